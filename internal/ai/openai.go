package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pet-pulse/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer writes the short digest that opens a daily issue.
type Summarizer interface {
	// SummarizeDigest summarizes the selected posts in the given language.
	SummarizeDigest(ctx context.Context, items []model.Item, language string) (string, error)
}

// OpenAIClient implements Summarizer using OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("openai: model must be specified")
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cc), model: cfg.Model}, nil
}

// SummarizeDigest uses at most the first MaxPromptItems items.
func (o *OpenAIClient) SummarizeDigest(ctx context.Context, items []model.Item, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	if len(items) == 0 {
		return "", nil
	}
	sys := fmt.Sprintf(`
		You write the opening paragraph of a daily newsletter about pets in Canada.
		Write in %s, 2 to 4 sentences (50-120 words), warm and concrete.
		Mention the cities where stories come from. No links, no hashtags, no lists.
		`, langOrDefault(language))
	user := fmt.Sprintf("Today's top pet posts from Canadian communities:\n%s\nTask: Summarize what pet owners across Canada are talking about today. Output the summary only, plain text.", promptLines(items))
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: summarize digest error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// MaxPromptItems caps how many posts go into a prompt.
const MaxPromptItems = 10

func promptLines(items []model.Item) string {
	b := &strings.Builder{}
	for i, it := range items {
		if i >= MaxPromptItems {
			break
		}
		fmt.Fprintf(b, "%d. r/%s: %s\n", i+1, it.Origin, it.Title)
		if excerpt := truncateRunes(it.Body, 200); excerpt != "" {
			fmt.Fprintf(b, "   Context: %s\n", excerpt)
		}
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
		MaxTokens:   400,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "English"
	}
	return l
}
