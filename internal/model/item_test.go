package model

import (
	"testing"
	"time"
)

func TestParseTimestampLayouts(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	cases := []string{
		"2025-03-14T09:30:00Z",
		"2025-03-14T09:30:00+00:00",
		"2025-03-14T05:30:00-04:00",
		"2025-03-14T09:30:00",
		"2025-03-14 09:30:00",
		"Fri, 14 Mar 2025 09:30:00 +0000",
		"2025-03-14T09:30Z",
		"2025-03-14T05:30-04:00",
		"2025-03-14T09:30:00+0000",
		"2025-03-14T05:30:00-0400",
		"20250314T093000Z",
		"20250314T053000-0400",
		"2025-03-14T09:30",
	}
	for _, s := range cases {
		got, ok := ParseTimestamp(s)
		if !ok {
			t.Errorf("ParseTimestamp(%q) not ok", s)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseTimestampRejects(t *testing.T) {
	for _, s := range []string{"", "   ", "yesterday", "14/03/2025"} {
		if _, ok := ParseTimestamp(s); ok {
			t.Errorf("ParseTimestamp(%q) should fail", s)
		}
	}
}

func TestItemTimestamp(t *testing.T) {
	social := Item{Kind: KindSocial, CreatedUTC: 1700000000}
	ts, ok := social.Timestamp()
	if !ok || ts.Unix() != 1700000000 {
		t.Fatalf("social timestamp = %v, %v", ts, ok)
	}
	if _, ok := (Item{Kind: KindSocial}).Timestamp(); ok {
		t.Errorf("zero created_utc should report missing")
	}
	news := Item{Kind: KindNews, Published: "2025-01-02"}
	ts, ok = news.Timestamp()
	if !ok || ts.Day() != 2 {
		t.Fatalf("news timestamp = %v, %v", ts, ok)
	}
}

func TestParseTimestampFractionalCompactOffset(t *testing.T) {
	got, ok := ParseTimestamp("2025-03-14T05:30:00.123-0400")
	want := time.Date(2025, 3, 14, 9, 30, 0, 123000000, time.UTC)
	if !ok || !got.Equal(want) {
		t.Fatalf("ParseTimestamp = %v, %v, want %v", got, ok, want)
	}
}
