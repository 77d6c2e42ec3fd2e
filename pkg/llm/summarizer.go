package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

const summarizerPrompt = `You are an expert analyst summarizing player feedback for game developers.
Respond only with a JSON object matching this schema:
%s
Keep the summary short and factual, list the most frequent themes first.`

// Summarizer produces one structured summary for a group of feedback texts
type Summarizer struct {
	llm    Completer
	schema string
}

// NewSummarizer makes a group summarizer
func NewSummarizer(llm Completer) *Summarizer {
	return &Summarizer{llm: llm, schema: schemaOf(&domain.GroupSummary{})}
}

// SummarizeAsync asks for a summary of texts without waiting for it, label describes the group,
// e.g. "Russian Steam reviews". The channel receives exactly one result and is closed.
func (s *Summarizer) SummarizeAsync(ctx context.Context, label string, texts []string) <-chan Parsed[domain.GroupSummary] {
	ch := make(chan Parsed[domain.GroupSummary], 1)
	nonEmpty := make([]string, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}
	if len(nonEmpty) == 0 {
		ch <- Parsed[domain.GroupSummary]{Result: Result{Kind: ResultAPIError, Err: ErrEmptyText, Model: s.llm.Model()}}
		close(ch)
		return ch
	}

	prompt := fmt.Sprintf("Summarize this batch of %d %s:\n\n%s", len(nonEmpty), label, strings.Join(nonEmpty, "\n---\n"))
	results := s.llm.CompleteAsync(ctx, Request{
		System:      fmt.Sprintf(summarizerPrompt, s.schema),
		Prompt:      prompt,
		JSON:        true,
		Temperature: 0.3,
		MaxTokens:   2048,
	})
	go func() {
		defer close(ch)
		res, ok := <-results
		if !ok {
			res = Result{Kind: ResultAPIError, Err: errors.New("no result from llm"), Model: s.llm.Model()}
		}
		ch <- decode[domain.GroupSummary](res, "summary")
	}()
	return ch
}
