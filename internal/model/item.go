package model

import (
	"strings"
	"time"
)

// Kind discriminates the two content streams.
type Kind string

const (
	KindSocial Kind = "reddit"
	KindNews   Kind = "news"
)

// Item is a single piece of content from either stream. Relevance and
// trending scores are attached by the scorer and ranker on every run.
type Item struct {
	Kind        Kind     `json:"content_type"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Body        string   `json:"body,omitempty"`
	Origin      string   `json:"origin"`
	URL         string   `json:"url,omitempty"`
	Permalink   string   `json:"permalink,omitempty"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedUTC  float64  `json:"created_utc,omitempty"` // social: epoch seconds
	Published   string   `json:"published,omitempty"`   // news: ISO-8601
	Score       int      `json:"score"`
	NumComments int      `json:"num_comments"`

	RelevanceScore float64 `json:"relevance_score"`
	TrendingScore  float64 `json:"trending_score"`
}

// Key identifies the item across streams as "kind:id".
func (it Item) Key() string {
	return string(it.Kind) + ":" + it.ID
}

// Text is the blob the relevance scorer reads.
func (it Item) Text() string {
	return it.Title + " " + it.Body
}

// Timestamp returns the item's creation time. ok is false when the item
// carries no usable timestamp.
func (it Item) Timestamp() (t time.Time, ok bool) {
	if it.Kind == KindSocial || it.Published == "" {
		if it.CreatedUTC <= 0 {
			return time.Time{}, false
		}
		sec := int64(it.CreatedUTC)
		nsec := int64((it.CreatedUTC - float64(sec)) * 1e9)
		return time.Unix(sec, nsec).UTC(), true
	}
	return ParseTimestamp(it.Published)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"20060102T150405Z0700",
	"20060102T150405",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-8601 variants news feeds emit. Values
// without a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
