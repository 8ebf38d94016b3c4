package history

import (
	"time"
)

// Message represents a single message in a conversation
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Metadata contains additional information about a message
type Metadata struct {
	SearchPerformed bool     `json:"search_performed"`
	SourceURLs      []string `json:"source_urls,omitempty"`
}
