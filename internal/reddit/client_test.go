package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pet-pulse/internal/model"
)

const catsListing = `{
  "data": {
    "children": [
      {"data": {"id": "abc", "title": "  My cat\n learned   to sit ", "selftext": "in Toronto",
        "score": 120, "num_comments": 14, "created_utc": 1748779200.0,
        "url": "https://i.redd.it/x.jpg", "permalink": "/r/cats/comments/abc/",
        "author": "whiskers", "link_flair_text": "Cute"}},
      {"data": {"id": "def", "title": "Vet advice", "selftext": "",
        "score": 3, "num_comments": 1, "created_utc": 1748775600,
        "permalink": "/r/cats/comments/def/", "author": ""}},
      {"data": {}}
    ]
  }
}`

func testClient(base string) *Client {
	return NewClient(Options{
		BaseURL:        base,
		UserAgent:      "pet-pulse-test",
		InitialBackoff: time.Millisecond,
	})
}

func TestTopPosts(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/cats/top.json" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(catsListing))
	}))
	defer srv.Close()

	items, err := testClient(srv.URL).TopPosts(context.Background(), "r/cats", "day", 500)
	if err != nil {
		t.Fatalf("TopPosts: %v", err)
	}
	if !strings.Contains(gotQuery, "limit=100") || !strings.Contains(gotQuery, "t=day") {
		t.Errorf("query = %q", gotQuery)
	}
	if gotUA != "pet-pulse-test" {
		t.Errorf("user agent = %q", gotUA)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	first := items[0]
	if first.Kind != model.KindSocial || first.Origin != "cats" {
		t.Errorf("kind/origin = %s/%s", first.Kind, first.Origin)
	}
	if first.Title != "My cat learned to sit" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Permalink != srv.URL+"/r/cats/comments/abc/" {
		t.Errorf("permalink = %q", first.Permalink)
	}
	if first.Score != 120 || first.NumComments != 14 || first.CreatedUTC != 1748779200 {
		t.Errorf("engagement = %+v", first)
	}
	if len(first.Tags) != 1 || first.Tags[0] != "Cute" {
		t.Errorf("tags = %v", first.Tags)
	}
	if items[1].Author != "[deleted]" {
		t.Errorf("empty author = %q", items[1].Author)
	}
}

func TestTopPostsRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(catsListing))
	}))
	defer srv.Close()

	items, err := testClient(srv.URL).TopPosts(context.Background(), "cats", "day", 10)
	if err != nil {
		t.Fatalf("TopPosts: %v", err)
	}
	if len(items) != 2 || atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("items=%d calls=%d", len(items), calls)
	}
}

func TestTopPostsDoesNotRetryNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).TopPosts(context.Background(), "gone", "day", 10); err == nil {
		t.Fatalf("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestFetchAllSkipsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/r/cats/") {
			w.Write([]byte(catsListing))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	res := testClient(srv.URL).FetchAll(context.Background(), []string{"private", "cats"}, "day", 15)
	if len(res.Items) != 2 {
		t.Errorf("items = %d", len(res.Items))
	}
	if len(res.Succeeded) != 1 || res.Succeeded[0] != "cats" {
		t.Errorf("succeeded = %v", res.Succeeded)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "private" {
		t.Errorf("failed = %v", res.Failed)
	}
}

func TestBackoff(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 5 * time.Second},
		{1, 10 * time.Second},
		{2, 20 * time.Second},
	}
	for _, tc := range cases {
		if got := Backoff(5*time.Second, tc.attempt); got != tc.want {
			t.Errorf("Backoff(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}
