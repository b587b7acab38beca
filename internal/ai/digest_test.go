package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pet-pulse/internal/model"
)

type stubSummarizer struct {
	text  string
	err   error
	calls int
	got   []model.Item
}

func (s *stubSummarizer) SummarizeDigest(ctx context.Context, items []model.Item, language string) (string, error) {
	s.calls++
	s.got = items
	return s.text, s.err
}

var rankedFixture = []model.Item{
	{Kind: model.KindNews, Origin: "Toronto", Title: "Dog show in Toronto"},
	{Kind: model.KindSocial, Origin: "Toronto", Title: "Found this kitten near Union"},
	{Kind: model.KindSocial, Origin: "dogs", Title: "My dog learned a trick"},
	{Kind: model.KindSocial, Origin: "ottawa", Title: "Transit delays again"},
	{Kind: model.KindSocial, Origin: "ottawa", Title: "Best DOG parks downtown?"},
}

func TestSelect(t *testing.T) {
	got := Select(rankedFixture, DefaultDigestOrigins, []string{"dog", "kitten"})
	if len(got) != 2 {
		t.Fatalf("selected = %d, want 2: %+v", len(got), got)
	}
	if got[0].Origin != "Toronto" || got[1].Title != "Best DOG parks downtown?" {
		t.Errorf("selected = %+v", got)
	}
}

func TestGenerateFallbackWithoutModel(t *testing.T) {
	d := &Digest{Keywords: []string{"dog", "kitten"}}
	text, byModel := d.Generate(context.Background(), rankedFixture)
	if byModel {
		t.Fatalf("expected fallback")
	}
	if !strings.Contains(text, "r/Toronto") || !strings.Contains(text, "Found this kitten near Union") {
		t.Errorf("fallback = %q", text)
	}
}

func TestGenerateUsesModel(t *testing.T) {
	stub := &stubSummarizer{text: "  Kittens everywhere.  "}
	d := &Digest{Summarizer: stub, Keywords: []string{"dog", "kitten"}}
	text, byModel := d.Generate(context.Background(), rankedFixture)
	if !byModel || text != "  Kittens everywhere.  " {
		t.Fatalf("Generate = %q, %v", text, byModel)
	}
	if stub.calls != 1 || len(stub.got) != 2 {
		t.Fatalf("summarizer calls=%d items=%d", stub.calls, len(stub.got))
	}
}

func TestGenerateFallsBackOnError(t *testing.T) {
	stub := &stubSummarizer{err: errors.New("quota")}
	d := &Digest{Summarizer: stub, Keywords: []string{"dog"}}
	text, byModel := d.Generate(context.Background(), rankedFixture)
	if byModel || !strings.HasPrefix(text, "Pet owners in r/ottawa") {
		t.Fatalf("Generate = %q, %v", text, byModel)
	}
}

func TestGenerateNoSelection(t *testing.T) {
	stub := &stubSummarizer{text: "unused"}
	d := &Digest{Summarizer: stub, Keywords: []string{"hamster"}}
	text, byModel := d.Generate(context.Background(), rankedFixture)
	if byModel || stub.calls != 0 {
		t.Fatalf("model should not be called without a selection")
	}
	if text != Fallback(nil) {
		t.Errorf("text = %q", text)
	}
}

func TestPromptLinesCapsItems(t *testing.T) {
	items := make([]model.Item, 15)
	for i := range items {
		items[i] = model.Item{Origin: "toronto", Title: "dog"}
	}
	lines := strings.Count(promptLines(items), "\n")
	if lines != MaxPromptItems {
		t.Errorf("prompt lines = %d, want %d", lines, MaxPromptItems)
	}
}
