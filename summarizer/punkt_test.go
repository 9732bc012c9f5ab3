package summarizer

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punktServer(t *testing.T, downloads *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downloads.Add(1)
		w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTokenizer_DownloadsOnce(t *testing.T) {
	var downloads atomic.Int32
	srv := punktServer(t, &downloads)

	p := NewPunktProvider(srv.URL, t.TempDir())

	tok, err := p.Tokenizer()
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, int32(1), downloads.Load())

	// second call reads the cached tokenizer, not the network
	tok2, err := p.Tokenizer()
	require.NoError(t, err)
	assert.Same(t, tok, tok2)
	assert.Equal(t, int32(1), downloads.Load())
}

func TestTokenizer_CachedFileSkipsDownload(t *testing.T) {
	var downloads atomic.Int32
	srv := punktServer(t, &downloads)

	cacheDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cacheDir, "punkt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "punkt", "english.json"), []byte("{}"), 0o644))

	p := NewPunktProvider(srv.URL, cacheDir)
	_, err := p.Tokenizer()
	require.NoError(t, err)
	assert.Equal(t, int32(0), downloads.Load())
}

func TestTokenizer_ConcurrentFirstUseSingleDownload(t *testing.T) {
	var downloads atomic.Int32
	srv := punktServer(t, &downloads)

	p := NewPunktProvider(srv.URL, t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Tokenizer()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), downloads.Load())
}

func TestTokenizer_DownloadFailureNotLatched(t *testing.T) {
	var downloads atomic.Int32
	fail := atomic.Bool{}
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downloads.Add(1)
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)

	p := NewPunktProvider(srv.URL, t.TempDir())

	_, err := p.Tokenizer()
	require.Error(t, err)

	fail.Store(false)
	tok, err := p.Tokenizer()
	require.NoError(t, err)
	assert.NotNil(t, tok)
	assert.Equal(t, int32(2), downloads.Load())
}

func TestTokenizer_PersistsCacheAcrossProviders(t *testing.T) {
	var downloads atomic.Int32
	srv := punktServer(t, &downloads)
	cacheDir := t.TempDir()

	p1 := NewPunktProvider(srv.URL, cacheDir)
	_, err := p1.Tokenizer()
	require.NoError(t, err)

	// a fresh provider over the same cache dir finds the file on disk
	p2 := NewPunktProvider(srv.URL, cacheDir)
	_, err = p2.Tokenizer()
	require.NoError(t, err)
	assert.Equal(t, int32(1), downloads.Load())
}
