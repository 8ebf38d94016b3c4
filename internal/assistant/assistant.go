// Package assistant drives a conversation turn: search the web, extract the
// result pages, ask the chat model with that context and record the exchange.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"web-groq/internal/chat"
	"web-groq/internal/history"
	"web-groq/internal/log"
)

const systemPrompt = `You are a helpful assistant that gives accurate answers based on the information provided.
Use the given context to answer the questions and cite the sources at the end of your answer.
Always answer in %s.`

// Assistant runs conversation turns against a searcher, a page extractor
// and a chat model, keeping the conversation in a history manager.
type Assistant struct {
	searcher  Searcher
	extractor PageExtractor
	chat      ChatStreamer
	history   *history.Manager
	display   Display

	window   int
	language string
	logger   log.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithHistoryWindow sets how many recent messages are sent with each request.
func WithHistoryWindow(n int) Option {
	return func(a *Assistant) { a.window = n }
}

// WithLanguage sets the language the model is told to answer in.
func WithLanguage(language string) Option {
	return func(a *Assistant) { a.language = language }
}

// WithLogger sets the assistant's logger.
func WithLogger(l log.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// New creates an Assistant.
func New(searcher Searcher, extractor PageExtractor, streamer ChatStreamer, hist *history.Manager, display Display, opts ...Option) *Assistant {
	a := &Assistant{
		searcher:  searcher,
		extractor: extractor,
		chat:      streamer,
		history:   hist,
		display:   display,
		window:    5,
		language:  "Spanish",
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("session", hist.SessionID())
	return a
}

// History returns the conversation manager.
func (a *Assistant) History() *history.Manager {
	return a.history
}

// ProcessTurn handles one user input. The user message is recorded first;
// the assistant message is recorded only when the model produced text.
func (a *Assistant) ProcessTurn(ctx context.Context, input string) error {
	logger := a.logger.With("turn", uuid.New().String())
	start := time.Now()

	a.history.AddMessage(history.Message{Role: chat.RoleUser, Content: input})

	a.display.PrintSearchActivity("Searching the web")
	results, err := a.searcher.Search(ctx, input)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	logger.Info("search completed", "results", len(results))

	var searchContext strings.Builder
	var sources []Source
	failed := 0
	for _, result := range results {
		if result.Link == "" {
			continue
		}
		page := a.extractor.Extract(ctx, result.Link)
		if !page.OK() {
			failed++
			logger.Info("source extraction failed", "url", result.Link, "error", page.Err)
			continue
		}
		if page.Text == "" {
			logger.Debug("source has no text", "url", result.Link)
			continue
		}
		fmt.Fprintf(&searchContext, "Source (%s):\n%s\n", result.Link, page.Text)
		sources = append(sources, Source{Title: result.Title, URL: result.Link})
	}
	logger.Info("context gathered", "sources", len(sources), "failed", failed, "chars", searchContext.Len())
	switch {
	case len(sources) > 0:
		a.display.PrintSuccess(fmt.Sprintf("Gathered information from %d sources", len(sources)))
	case len(results) > 0:
		a.display.PrintWarning("No readable content in the search results")
	}

	messages := a.buildMessages(searchContext.String())

	a.display.PrintSearchActivity("Generating answer")
	a.display.StartAssistantResponse()
	answer, err := a.chat.Stream(ctx, messages, a.display.WriteAnswer)
	a.display.EndAssistantResponse()
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}
	if answer == "" {
		return ErrNoResponse
	}

	msg := history.Message{Role: chat.RoleAssistant, Content: answer}
	if len(sources) > 0 {
		urls := make([]string, len(sources))
		for i, s := range sources {
			urls[i] = s.URL
		}
		msg.Metadata = &history.Metadata{SearchPerformed: true, SourceURLs: urls}
	}
	a.history.AddMessage(msg)

	a.display.PrintSources(sources)
	logger.Info("turn completed", "duration", time.Since(start))
	return nil
}

// buildMessages assembles the instruction, the search context and the most
// recent history window.
func (a *Assistant) buildMessages(searchContext string) []chat.Message {
	recent := a.history.GetRecentMessages(a.window)

	messages := make([]chat.Message, 0, len(recent)+2)
	messages = append(messages,
		chat.Message{Role: chat.RoleSystem, Content: fmt.Sprintf(systemPrompt, a.language)},
		chat.Message{Role: chat.RoleSystem, Content: "Search context:\n" + searchContext},
	)
	for _, msg := range recent {
		messages = append(messages, chat.Message{Role: msg.Role, Content: msg.Content})
	}
	return messages
}
