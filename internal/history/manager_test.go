package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m := NewManager()

	require.Equal(t, 0, m.Len())
	require.Empty(t, m.Messages())
	require.Empty(t, m.GetRecentMessages(5))
	_, err := uuid.Parse(m.SessionID())
	require.NoError(t, err)
	require.False(t, m.StartedAt().IsZero())
}

func TestAddMessage_PreservesOrder(t *testing.T) {
	m := NewManager()
	m.AddMessage(Message{Role: "user", Content: "hi"})
	m.AddMessage(Message{Role: "assistant", Content: "hello"})
	m.AddMessage(Message{Role: "assistant", Content: "again"})

	msgs := m.Messages()
	require.Len(t, msgs, 3)
	require.Equal(t, "hi", msgs[0].Content)
	require.Equal(t, "hello", msgs[1].Content)
	require.Equal(t, "again", msgs[2].Content)
	for _, msg := range msgs {
		require.False(t, msg.Timestamp.IsZero())
	}
}

func TestAddMessage_KeepsTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewManager()
	m.AddMessage(Message{Role: "user", Content: "x", Timestamp: ts})

	require.Equal(t, ts, m.Messages()[0].Timestamp)
}

func TestGetRecentMessages_Window(t *testing.T) {
	m := NewManager()
	for i := 0; i < 8; i++ {
		m.AddMessage(Message{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}

	recent := m.GetRecentMessages(5)
	require.Len(t, recent, 5)
	require.Equal(t, "m3", recent[0].Content)
	require.Equal(t, "m7", recent[4].Content)

	require.Len(t, m.GetRecentMessages(20), 8)
	require.Empty(t, m.GetRecentMessages(0))
	require.Equal(t, 8, m.Len())
}

func TestGetRecentMessages_ReturnsCopy(t *testing.T) {
	m := NewManager()
	m.AddMessage(Message{Role: "user", Content: "original"})

	recent := m.GetRecentMessages(1)
	recent[0].Content = "changed"

	require.Equal(t, "original", m.Messages()[0].Content)
}
