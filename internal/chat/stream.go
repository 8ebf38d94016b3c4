package chat

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"web-groq/internal/log"
)

var dataPrefix = []byte("data: ")

// streamChunk is the subset of a completion chunk the decoder reads.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Decoder reads content fragments from a streaming chat-completion body.
// Each line is a JSON chunk, optionally prefixed with "data: ". The decoder
// is single-pass: once Next returns an error it keeps returning it.
type Decoder struct {
	r      *bufio.Reader
	logger log.Logger
	err    error
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, logger log.Logger) *Decoder {
	if logger == nil {
		logger = log.Default()
	}
	return &Decoder{r: bufio.NewReader(r), logger: logger}
}

// Next returns the next non-empty content fragment. It returns io.EOF once
// the body is exhausted, or the read error that ended the stream.
// Unparseable lines are skipped.
func (d *Decoder) Next() (string, error) {
	for d.err == nil {
		line, err := d.r.ReadBytes('\n')
		if err != nil {
			if err != io.EOF {
				err = fmt.Errorf("failed to read stream: %w", err)
			}
			d.err = err
		}

		if fragment, ok := d.parseLine(line); ok {
			return fragment, nil
		}
	}
	return "", d.err
}

// parseLine extracts choices[0].delta.content from one line.
func (d *Decoder) parseLine(line []byte) (string, bool) {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return "", false
	}
	line = bytes.TrimPrefix(line, dataPrefix)
	if len(bytes.TrimSpace(line)) == 0 {
		return "", false
	}

	var chunk streamChunk
	if err := json.Unmarshal(line, &chunk); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			d.logger.Debug("skipping non-JSON stream line", "line", string(line))
			return "", false
		}
		// encoding/json keeps decoding past a type mismatch; use what was filled in.
		d.logger.Warn("stream chunk has unexpected shape", "field", typeErr.Field, "error", err)
	}

	if len(chunk.Choices) == 0 {
		return "", false
	}
	content := chunk.Choices[0].Delta.Content
	return content, content != ""
}

// Decode drains r, passing each fragment to sink as it arrives, and returns
// the accumulated text. On a read error it returns the text gathered so far
// together with the error.
func Decode(r io.Reader, sink func(string), logger log.Logger) (string, error) {
	dec := NewDecoder(r, logger)
	var full strings.Builder

	for {
		fragment, err := dec.Next()
		if err == io.EOF {
			return full.String(), nil
		}
		if err != nil {
			return full.String(), err
		}
		full.WriteString(fragment)
		if sink != nil {
			sink(fragment)
		}
	}
}
