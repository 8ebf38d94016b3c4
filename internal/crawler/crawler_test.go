package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"web-groq/internal/config"
)

const samplePage = `<!DOCTYPE html>
<html>
  <head>
    <title>Sample Page</title>
    <style>body { color: red; }</style>
    <script>console.log('head')</script>
  </head>
  <body>
    <script>console.log('test')</script>
    <h1>Heading</h1>
    <p>Test   content with a <a href="https://example.com/hidden-target">link text</a>.</p>
    <ul><li>one</li><li>two</li></ul>
  </body>
</html>`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func htmlHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	}
}

func TestExtractText_StripsScriptsAndLinks(t *testing.T) {
	title, text, err := ExtractText([]byte(samplePage))
	require.NoError(t, err)

	require.Equal(t, "Sample Page", title)
	require.Contains(t, text, "Test content with a link text.")
	require.Contains(t, text, "Heading")
	require.NotContains(t, text, "console.log")
	require.NotContains(t, text, "color: red")
	require.NotContains(t, text, "hidden-target")
	require.NotContains(t, text, "Sample Page")
}

func TestExtractText_BlockLayout(t *testing.T) {
	_, text, err := ExtractText([]byte(`<body><h1>Title</h1><p>First</p><p>Second <b>bold</b></p><ul><li>a</li><li>b</li></ul></body>`))
	require.NoError(t, err)
	require.Equal(t, "Title\n\nFirst\n\nSecond bold\n\na\nb", text)
}

func TestExtract_Success(t *testing.T) {
	srv := newServer(t, htmlHandler(samplePage))
	c := NewCrawler(5*time.Second, 2000, "test-agent")

	page := c.Extract(context.Background(), srv.URL)
	require.True(t, page.OK())
	require.Equal(t, srv.URL, page.URL)
	require.Equal(t, "Sample Page", page.Title)
	require.Contains(t, page.Text, "Test content")
	require.NotContains(t, page.Text, "console.log")
}

func TestExtract_SendsUserAgent(t *testing.T) {
	var ua string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		htmlHandler("<p>hi</p>")(w, r)
	})

	NewCrawler(time.Second, 2000, "web-groq-test").Extract(context.Background(), srv.URL)
	require.Equal(t, "web-groq-test", ua)
}

func TestExtract_Truncates(t *testing.T) {
	long := strings.Repeat("é", 5000)
	srv := newServer(t, htmlHandler("<p>"+long+"</p>"))

	page := NewCrawler(time.Second, 2000, "ua").Extract(context.Background(), srv.URL)
	require.True(t, page.OK())
	require.Equal(t, 2000, utf8.RuneCountInString(page.Text))
}

func TestExtract_Failures(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	notFound := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	pdf := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4")
	})
	slow := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
		htmlHandler("<p>late</p>")(w, r)
	})

	tests := []struct {
		name string
		url  string
	}{
		{"connection refused", closed.URL},
		{"not found", notFound.URL},
		{"non-html", pdf.URL},
		{"timeout", slow.URL},
		{"invalid url", "://bad url"},
		{"unsupported scheme", "ftp://example.com/file"},
	}

	c := NewCrawler(200*time.Millisecond, 2000, "ua")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := c.Extract(context.Background(), tt.url)
			require.False(t, page.OK())
			require.Error(t, page.Err)
			require.Empty(t, page.Text)
			require.Empty(t, c.Text(context.Background(), tt.url))
		})
	}
}

func TestExtract_ReadabilityMode(t *testing.T) {
	article := `<html><head><title>News</title></head><body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article><h1>Big story</h1>
<p>` + strings.Repeat("The council approved the new budget after a long debate. ", 20) + `</p>
<p>` + strings.Repeat("Residents will see changes to local services next year. ", 20) + `</p>
</article>
<script>track()</script>
</body></html>`
	srv := newServer(t, htmlHandler(article))

	c := NewCrawler(time.Second, 2000, "ua", WithMode(config.ExtractReadability))
	page := c.Extract(context.Background(), srv.URL)

	require.True(t, page.OK())
	require.Contains(t, page.Text, "The council approved the new budget")
	require.NotContains(t, page.Text, "track()")
}

func TestExtract_ReadabilityFallsBackToText(t *testing.T) {
	srv := newServer(t, htmlHandler("<p>tiny</p>"))

	c := NewCrawler(time.Second, 2000, "ua", WithMode(config.ExtractReadability))
	page := c.Extract(context.Background(), srv.URL)

	require.True(t, page.OK())
	require.Contains(t, page.Text, "tiny")
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "abc", truncateRunes("abc", 5))
	require.Equal(t, "ab", truncateRunes("abc", 2))
	require.Equal(t, "日本", truncateRunes("日本語", 2))
	require.Equal(t, "", truncateRunes("abc", 0))
}
