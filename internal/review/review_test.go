package review

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pet-pulse/internal/model"
	"pet-pulse/internal/pipeline"
)

func fixtureCandidates() *pipeline.Candidates {
	return &pipeline.Candidates{
		RunID:   "run-1",
		Date:    "20250601",
		Summary: "Dogs everywhere\nin Toronto.",
		Stats:   pipeline.Stats{SourcesSucceeded: []string{"reddit", "news"}},
		Content: []model.Item{
			{Kind: model.KindNews, ID: "n1", Origin: "CBC News", Title: "Shelter full", URL: "https://cbc.ca/x", TrendingScore: 7.475, RelevanceScore: 0.3},
			{Kind: model.KindSocial, ID: "t1", Origin: "toronto", Title: "Lost dog", Body: strings.Repeat("woof ", 60), Permalink: "https://www.reddit.com/r/toronto/t1", Score: 200, NumComments: 4, TrendingScore: 3.452, RelevanceScore: 1},
			{Kind: model.KindSocial, ID: "t2", Origin: "ottawa", Title: "Cat cafe", TrendingScore: 1.2, RelevanceScore: 0.3},
		},
	}
}

func TestRenderSheet(t *testing.T) {
	out, err := Render(fixtureCandidates())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		`run_id: "run-1"`,
		"- [ ] `news:n1` Shelter full",
		"CBC News | trending 7.47 | relevance 30%",
		"r/toronto | trending 3.45 | relevance 100% | 200 upvotes, 4 comments",
		"https://www.reddit.com/r/toronto/t1",
		"> Dogs everywhere in Toronto.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sheet missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("woof ", 45)) {
		t.Errorf("preview not truncated")
	}
}

func TestParseAndApprove(t *testing.T) {
	c := fixtureCandidates()
	sheet, err := Render(c)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	sheet = strings.Replace(sheet, "- [ ] `reddit:t2`", "- [x] `reddit:t2`", 1)
	sheet = strings.Replace(sheet, "- [ ] `news:n1`", "- [X] `news:n1`", 1)
	sheet += "\n- [x] `reddit:gone`\n"

	path := filepath.Join(t.TempDir(), "review.md")
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if s.Frontmatter.RunID != "run-1" || s.Frontmatter.Date != "20250601" || s.Frontmatter.Candidates != 3 {
		t.Errorf("frontmatter = %+v", s.Frontmatter)
	}
	if len(s.Checked) != 3 {
		t.Fatalf("checked = %v", s.Checked)
	}

	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	a := Approve(c, s.Checked, now)
	if len(a.Content) != 2 || a.Content[0].ID != "n1" || a.Content[1].ID != "t2" {
		t.Fatalf("approved = %+v", a.Content)
	}
	if a.Stats.RedditPosts != 1 || a.Stats.NewsArticles != 1 || a.Stats.TotalItems != 2 {
		t.Errorf("stats = %+v", a.Stats)
	}
	if a.Review.ApprovalRate != "66.7%" || a.Review.TotalCandidates != 3 {
		t.Errorf("review = %+v", a.Review)
	}
	if len(a.Review.Unknown) != 1 || a.Review.Unknown[0] != "reddit:gone" {
		t.Errorf("unknown = %v", a.Review.Unknown)
	}
	if !a.ReviewedAt.Equal(now) {
		t.Errorf("reviewed at = %v", a.ReviewedAt)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	s, err := Parse(strings.NewReader("# notes\n\n* [x] `news:a`\n- [ ] `news:b`\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Frontmatter != (Frontmatter{}) {
		t.Errorf("frontmatter = %+v", s.Frontmatter)
	}
	if len(s.Checked) != 1 || s.Checked[0] != "news:a" {
		t.Errorf("checked = %v", s.Checked)
	}
}

func TestParseUnterminatedFrontmatter(t *testing.T) {
	if _, err := Parse(strings.NewReader("---\ntitle: x\n")); err == nil {
		t.Fatal("expected error")
	}
}
