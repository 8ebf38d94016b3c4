package assistant

import (
	"context"
	"errors"

	"web-groq/internal/chat"
	"web-groq/internal/crawler"
	"web-groq/internal/history"
	"web-groq/internal/search"
)

// ErrNoResponse is returned when the model streamed no content.
var ErrNoResponse = errors.New("no response received from the model")

// Source is a page that contributed context to an answer.
type Source struct {
	Title string
	URL   string
}

// Searcher finds pages for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// PageExtractor reduces a URL to plain text.
type PageExtractor interface {
	Extract(ctx context.Context, url string) crawler.Page
}

// ChatStreamer streams a chat completion, passing fragments to onChunk.
type ChatStreamer interface {
	Stream(ctx context.Context, messages []chat.Message, onChunk func(string)) (string, error)
}

// Display receives per-turn progress and the streamed answer.
type Display interface {
	PrintSearchActivity(message string)
	PrintSuccess(msg string)
	PrintWarning(msg string)
	StartAssistantResponse()
	WriteAnswer(text string)
	EndAssistantResponse()
	PrintSources(sources []Source)
}

// Console is the full terminal surface used by the REPL.
type Console interface {
	Display
	PrintWelcome(modelName string)
	PrintGoodbye()
	PrintPrompt()
	PrintError(err error)
	ClearScreen()
	PrintHistory(messages []history.Message)
}

// LineReader yields one line of user input per call.
type LineReader interface {
	ReadLine() (string, error)
}
