package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-pulse/internal/model"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Sample News</title>
  <item>
    <title>Toronto shelter sees record dog adoptions</title>
    <link>https://example.com/a</link>
    <description><![CDATA[<p>Staff say <b>puppies</b> &amp; seniors</p><p>went fast.</p>]]></description>
    <pubDate>Sun, 01 Jun 2025 09:00:00 +0000</pubDate>
    <category>Local</category>
  </item>
  <item>
    <title>Interest rates hold steady</title>
    <link>https://example.com/b</link>
    <description>The bank kept rates unchanged.</description>
    <pubDate>Sun, 01 Jun 2025 08:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Weekend events roundup</title>
    <link>https://example.com/c</link>
    <description>Markets and music.</description>
    <category>Pets</category>
  </item>
</channel>
</rss>`

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testScraper() *Scraper {
	return NewScraper(Options{
		Keywords: []string{"dog", "cat", "pet"},
		Now:      func() time.Time { return testNow },
	})
}

func TestParseKeepsPetEntries(t *testing.T) {
	items, err := testScraper().Parse("Sample News", strings.NewReader(sampleRSS))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	a := items[0]
	if a.Kind != model.KindNews || a.Origin != "Sample News" {
		t.Errorf("kind/origin = %s/%s", a.Kind, a.Origin)
	}
	if a.Body != "Staff say puppies & seniors went fast." {
		t.Errorf("body = %q", a.Body)
	}
	if a.Published != "2025-06-01T09:00:00Z" {
		t.Errorf("published = %q", a.Published)
	}
	if a.ID == "" || a.URL != "https://example.com/a" {
		t.Errorf("id/url = %q/%q", a.ID, a.URL)
	}
	// matched on category only, no date: falls back to now
	c := items[1]
	if c.URL != "https://example.com/c" || c.Published != "2025-06-01T12:00:00Z" {
		t.Errorf("category entry = %+v", c)
	}
}

func TestParseStableIDs(t *testing.T) {
	s := testScraper()
	first, _ := s.Parse("Sample News", strings.NewReader(sampleRSS))
	second, _ := s.Parse("Sample News", strings.NewReader(sampleRSS))
	if first[0].ID != second[0].ID {
		t.Fatalf("ids differ across runs: %s vs %s", first[0].ID, second[0].ID)
	}
	if first[0].ID == first[1].ID {
		t.Fatalf("distinct links share an id")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("abcdefghij", 8); got != "abcde..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("rivières et chats", 9); got != "rivièr..." {
		t.Errorf("Truncate runes = %q", got)
	}
}

func TestCleanHTML(t *testing.T) {
	s := testScraper()
	got := s.CleanHTML(`<div>One<br/>Two</div><script>alert(1)</script> &quot;Three&quot;`)
	if got != `One Two "Three"` {
		t.Errorf("CleanHTML = %q", got)
	}
	if s.CleanHTML("   ") != "" {
		t.Errorf("blank input should be empty")
	}
}

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			w.Header().Set("Content-Type", "application/rss+xml")
			w.Write([]byte(sampleRSS))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	res := testScraper().FetchAll(context.Background(), map[string]string{
		"Broken": srv.URL + "/down",
		"Good":   srv.URL + "/ok",
	})
	if len(res.Items) != 2 {
		t.Errorf("items = %d", len(res.Items))
	}
	if len(res.Succeeded) != 1 || res.Succeeded[0] != "Good" {
		t.Errorf("succeeded = %v", res.Succeeded)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "Broken" {
		t.Errorf("failed = %v", res.Failed)
	}
}
