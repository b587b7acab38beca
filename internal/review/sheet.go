// Package review turns a candidates snapshot into a markdown sheet an
// editor can tick, and reads the ticked sheet back into approved content.
package review

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"strings"
	"text/template"

	"pet-pulse/internal/model"
	"pet-pulse/internal/news"
	"pet-pulse/internal/pipeline"
)

// PreviewRunes caps the body preview shown per item.
const PreviewRunes = 200

type sheetItem struct {
	Key          string
	Title        string
	Source       string
	Trending     float64
	RelevancePct int
	Engagement   string
	Preview      string
	Link         string
}

type sheetData struct {
	Date    string
	RunID   string
	Summary string
	Items   []sheetItem
}

//go:embed sheet.tmpl
var sheetTpl string

var compiled = template.Must(template.New("sheet").Parse(sheetTpl))

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func toSheetItem(it model.Item) sheetItem {
	si := sheetItem{
		Key:          it.Key(),
		Title:        oneLine(it.Title),
		Trending:     it.TrendingScore,
		RelevancePct: int(math.Round(it.RelevanceScore * 100)),
		Link:         it.URL,
	}
	if body := oneLine(it.Body); body != "" {
		si.Preview = news.Truncate(body, PreviewRunes)
	}
	if it.Kind == model.KindSocial {
		si.Source = "r/" + it.Origin
		si.Engagement = fmt.Sprintf("%d upvotes, %d comments", it.Score, it.NumComments)
		if it.Permalink != "" {
			si.Link = it.Permalink
		}
	} else {
		si.Source = it.Origin
	}
	return si
}

// Render builds the review sheet for c.
func Render(c *pipeline.Candidates) (string, error) {
	d := sheetData{
		Date:    c.Date,
		RunID:   c.RunID,
		Summary: oneLine(c.Summary),
		Items:   make([]sheetItem, 0, len(c.Content)),
	}
	for _, it := range c.Content {
		d.Items = append(d.Items, toSheetItem(it))
	}
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
