package terminal

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	r := NewReader(strings.NewReader("capital of France\r\nsalir\npartial"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	require.Equal(t, "capital of France", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	require.Equal(t, "salir", line)

	line, err = r.ReadLine()
	require.Equal(t, io.EOF, err)
	require.Equal(t, "partial", line)

	line, err = r.ReadLine()
	require.Equal(t, io.EOF, err)
	require.Empty(t, line)
}
