package summarizer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/neurosnap/sentences"

	"text-summary/logger"
)

// PunktProvider owns the punkt sentence-tokenizer resource for the
// process: checked once, populated once, read thereafter. The training
// data lives on disk under the cache dir; when absent it is downloaded
// exactly once, even under concurrent first use. A failed download is
// not latched — the next call tries again.
type PunktProvider struct {
	dataURL   string
	cachePath string
	client    *http.Client

	mu  sync.Mutex
	tok *sentences.DefaultSentenceTokenizer
}

// NewPunktProvider resolves the cache location and builds a provider.
// An empty cacheDir falls back to the user cache dir.
func NewPunktProvider(dataURL, cacheDir string) *PunktProvider {
	if cacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(base, "text-summary")
		} else {
			cacheDir = os.TempDir()
		}
	}
	return &PunktProvider{
		dataURL:   dataURL,
		cachePath: filepath.Join(cacheDir, "punkt", "english.json"),
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Tokenizer returns the process-wide tokenizer, loading (and if needed
// downloading) the training data on first use.
func (p *PunktProvider) Tokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tok != nil {
		return p.tok, nil
	}

	data, err := os.ReadFile(p.cachePath)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = p.download()
	}
	if err != nil {
		return nil, err
	}

	training, err := sentences.LoadTraining(data)
	if err != nil {
		return nil, fmt.Errorf("punkt: invalid training data: %w", err)
	}

	p.tok = sentences.NewSentenceTokenizer(training)
	return p.tok, nil
}

func (p *PunktProvider) download() ([]byte, error) {
	logger.Log.Infof("punkt training data missing, downloading from %s", p.dataURL)

	resp, err := p.client.Get(p.dataURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("punkt: download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := p.store(data); err != nil {
		return nil, err
	}
	return data, nil
}

// store writes the training data atomically so a crashed download never
// leaves a truncated cache file behind.
func (p *PunktProvider) store(data []byte) error {
	dir := filepath.Dir(p.cachePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "english-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p.cachePath)
}
