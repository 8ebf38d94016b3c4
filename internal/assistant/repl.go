package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// IsExitCommand reports whether input ends the session.
func IsExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "salir", "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

// Run reads user input until an exit command or end of input. Failed turns
// are reported on the console and the loop continues.
func (a *Assistant) Run(ctx context.Context, in LineReader, console Console, modelName string) error {
	console.PrintWelcome(modelName)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		console.PrintPrompt()
		input, err := in.ReadLine()
		if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}

		query := strings.TrimSpace(input)
		if IsExitCommand(query) {
			break
		}

		switch query {
		case "":
			continue
		case "/clear":
			console.ClearScreen()
			console.PrintWelcome(modelName)
			continue
		case "/history":
			console.PrintHistory(a.History().Messages())
			continue
		}

		if err := a.safeTurn(ctx, query); err != nil {
			a.logger.Warn("turn failed", "error", err)
			console.PrintError(err)
		}
	}

	console.PrintGoodbye()
	return nil
}

// safeTurn runs ProcessTurn, converting a panic into an error so one turn
// cannot end the session.
func (a *Assistant) safeTurn(ctx context.Context, query string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return a.ProcessTurn(ctx, query)
}
