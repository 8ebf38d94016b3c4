package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"web-groq/internal/assistant"
	"web-groq/internal/history"
)

// Color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Display writes user-facing output: status lines, the streamed answer and
// the sources footer.
type Display struct {
	out            io.Writer
	width          int
	color          bool
	renderer       *glamour.TermRenderer
	responseBuffer strings.Builder
	startTime      time.Time
	wordCount      int
}

// Option configures a Display.
type Option func(*Display)

// WithColor forces ANSI colors on or off.
func WithColor(enabled bool) Option {
	return func(d *Display) { d.color = enabled }
}

// WithMarkdown re-renders each finished answer as markdown.
func WithMarkdown(enabled bool) Option {
	return func(d *Display) {
		if !enabled {
			d.renderer = nil
			return
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(d.width-10),
		)
		if err == nil {
			d.renderer = renderer
		}
	}
}

// NewDisplay creates a display writing to out. Colors default to on when
// out is a terminal.
func NewDisplay(out io.Writer, opts ...Option) *Display {
	width, isTTY := terminalInfo(out)
	d := &Display{
		out:   out,
		width: width,
		color: isTTY,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// terminalInfo reports the width of out and whether it is a terminal.
func terminalInfo(out io.Writer) (int, bool) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 80, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < 20 {
		return 80, true
	}
	return width, true
}

func (d *Display) paint(color, s string) string {
	if !d.color {
		return s
	}
	return color + s + colorReset
}

// ClearScreen clears the terminal
func (d *Display) ClearScreen() {
	if d.color {
		fmt.Fprint(d.out, "\033[2J\033[H")
	}
}

// PrintWelcome displays the welcome message
func (d *Display) PrintWelcome(modelName string) {
	fmt.Fprintln(d.out, d.paint(colorBold+colorGreen, "Welcome to web-groq!"))
	fmt.Fprintf(d.out, "%s %s\n", d.paint(colorGray, "Model:"), modelName)
	fmt.Fprintf(d.out, "%s\n\n", d.paint(colorGray, "Type 'salir' or 'exit' to end the conversation. Commands: /history /clear"))
}

// PrintGoodbye displays the goodbye message
func (d *Display) PrintGoodbye() {
	fmt.Fprintf(d.out, "\n%s\n", d.paint(colorBold+colorGreen, "Goodbye!"))
}

// PrintSeparator prints a visual separator
func (d *Display) PrintSeparator() {
	fmt.Fprintln(d.out, d.paint(colorDim, strings.Repeat("─", min(d.width, 80))))
}

// PrintPrompt displays the user input prompt
func (d *Display) PrintPrompt() {
	fmt.Fprintf(d.out, "%s ", d.paint(colorBold+colorCyan, "You:"))
}

// PrintSearchActivity shows search progress
func (d *Display) PrintSearchActivity(message string) {
	fmt.Fprintf(d.out, "\n%s\n", d.paint(colorBold+colorBlue, message+"..."))
}

// PrintInfo displays an info message
func (d *Display) PrintInfo(msg string) {
	fmt.Fprintln(d.out, d.paint(colorCyan, "ℹ "+msg))
}

// PrintWarning displays a warning message
func (d *Display) PrintWarning(msg string) {
	fmt.Fprintln(d.out, d.paint(colorYellow, "⚠ "+msg))
}

// PrintSuccess displays a success message
func (d *Display) PrintSuccess(msg string) {
	fmt.Fprintln(d.out, d.paint(colorGreen, "✓ "+msg))
}

// PrintError displays an error message
func (d *Display) PrintError(err error) {
	fmt.Fprintf(d.out, "\n%s\n", d.paint(colorBold+colorRed, "Error: "+err.Error()))
}

// StartAssistantResponse resets per-answer state
func (d *Display) StartAssistantResponse() {
	d.startTime = time.Now()
	d.wordCount = 0
	d.responseBuffer.Reset()
	fmt.Fprintln(d.out)
}

// WriteAnswer streams an answer fragment as it arrives
func (d *Display) WriteAnswer(text string) {
	d.responseBuffer.WriteString(text)
	d.wordCount += len(strings.Fields(text))
	fmt.Fprint(d.out, text)
}

// EndAssistantResponse finishes the streamed answer, optionally re-rendering
// it as markdown.
func (d *Display) EndAssistantResponse() {
	fmt.Fprint(d.out, "\n\n")

	if d.responseBuffer.Len() == 0 {
		return
	}

	if d.renderer != nil {
		rendered, err := d.renderer.Render(d.responseBuffer.String())
		if err == nil {
			d.PrintSeparator()
			fmt.Fprintln(d.out, strings.TrimRight(rendered, "\n"))
			d.PrintSeparator()
		}
	}

	fmt.Fprintln(d.out, d.paint(colorGray, fmt.Sprintf("%s · ~%d words", formatDuration(time.Since(d.startTime)), d.wordCount)))
}

// PrintSources prints the citation footer
func (d *Display) PrintSources(sources []assistant.Source) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintf(d.out, "\n%s\n", d.paint(colorBold, "Sources:"))
	for _, s := range sources {
		fmt.Fprintf(d.out, "- %s: %s\n", s.Title, s.URL)
	}
}

// PrintHistory shows the whole conversation so far
func (d *Display) PrintHistory(messages []history.Message) {
	if len(messages) == 0 {
		d.PrintInfo("No conversation history yet")
		return
	}

	d.PrintSeparator()
	fmt.Fprintln(d.out, "Conversation History")
	d.PrintSeparator()

	for _, msg := range messages {
		timestamp := msg.Timestamp.Format("15:04:05")
		if msg.Role == "user" {
			fmt.Fprintf(d.out, "\n[%s] You:\n%s\n", timestamp, msg.Content)
			continue
		}
		fmt.Fprintf(d.out, "\n[%s] Assistant:\n%s\n", timestamp, msg.Content)
		if msg.Metadata != nil && len(msg.Metadata.SourceURLs) > 0 {
			fmt.Fprintln(d.out, "Sources:")
			for _, url := range msg.Metadata.SourceURLs {
				fmt.Fprintf(d.out, "  - %s\n", truncate(url, 80))
			}
		}
	}

	d.PrintSeparator()
}

// truncate shortens s to at most maxLen runes, ending in "..." when there
// is room for it.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
