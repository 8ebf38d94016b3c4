package search

import "fmt"

// Request is the JSON body sent to Serper
type Request struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

// Response represents the JSON response from Serper
type Response struct {
	Organic []Result `json:"organic"`
}

// Result represents a single organic search result
type Result struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet,omitempty"`
	Position int    `json:"position,omitempty"`
}

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search provider returned status %d: %s", e.StatusCode, e.Body)
}
