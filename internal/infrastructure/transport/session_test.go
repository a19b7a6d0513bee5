package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionNavigateAndContent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	s := NewSession(5*time.Second, "")
	defer s.Close()

	h, err := s.Navigate(context.Background(), server.URL)
	require.NoError(t, err)

	content, err := s.Content(context.Background(), h)
	require.NoError(t, err)
	assert.Contains(t, content, "hello")
	assert.NotEmpty(t, gotUA, "browser-like user agent should be sent")
}

func TestSessionReloadRefetches(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.Write([]byte("<html>first</html>"))
			return
		}
		w.Write([]byte("<html>second</html>"))
	}))
	defer server.Close()

	s := NewSession(5*time.Second, "")
	defer s.Close()

	h, err := s.Navigate(context.Background(), server.URL)
	require.NoError(t, err)

	require.NoError(t, s.Reload(context.Background(), h))
	content, err := s.Content(context.Background(), h)
	require.NoError(t, err)
	assert.Contains(t, content, "second")
	assert.Equal(t, 2, hits)
}

func TestSessionCookiesPersist(t *testing.T) {
	var secondCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/set":
			http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "abc"})
		case "/check":
			if c, err := r.Cookie("session_id"); err == nil {
				secondCookie = c.Value
			}
		}
	}))
	defer server.Close()

	s := NewSession(5*time.Second, "")
	defer s.Close()

	ctx := context.Background()
	_, err := s.Navigate(ctx, server.URL+"/set")
	require.NoError(t, err)
	_, err = s.Navigate(ctx, server.URL+"/check")
	require.NoError(t, err)

	assert.Equal(t, "abc", secondCookie)
}

func TestSessionEvaluateUnsupported(t *testing.T) {
	s := NewSession(time.Second, "")
	defer s.Close()

	_, err := s.Evaluate(context.Background(), &page{}, "window.scrollTo(0, 0)")
	assert.ErrorIs(t, err, domain.ErrEvaluateUnsupported)
}

func TestSessionNavigateError(t *testing.T) {
	s := NewSession(500*time.Millisecond, "")
	defer s.Close()

	_, err := s.Navigate(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
}
