package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/trknhr/ghosttext/internal/logger"
)

// Loader yields a whole training text.
type Loader interface {
	Load() (string, error)
	GetCurrentMtime() (int64, error)
	Path() string
	Key() string
}

type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (f *FileLoader) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read corpus %s: %w", f.path, err)
	}
	return string(data), nil
}

func (f *FileLoader) GetCurrentMtime() (int64, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().Unix(), nil
}

func (f *FileLoader) Path() string {
	return f.path
}

func (f *FileLoader) Key() string {
	return filepath.Base(f.path)
}

// LoadAll reads every source concurrently and joins the texts in the order
// the loaders were given.
func LoadAll(ctx context.Context, loaders []Loader) (string, error) {
	if len(loaders) == 0 {
		return "", fmt.Errorf("no corpus sources given")
	}

	texts := make([]string, len(loaders))
	g, ctx := errgroup.WithContext(ctx)
	for i, l := range loaders {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := l.Load()
			if err != nil {
				return err
			}
			logger.Debug("loaded %d bytes from %s", len(text), l.Path())
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(texts, ""), nil
}

// LatestMtime returns the newest modification time, in unix seconds, across
// the sources.
func LatestMtime(loaders []Loader) (int64, error) {
	var latest int64
	for _, l := range loaders {
		mtime, err := l.GetCurrentMtime()
		if err != nil {
			return 0, fmt.Errorf("stat corpus %s: %w", l.Path(), err)
		}
		latest = max(latest, mtime)
	}
	return latest, nil
}

// Keys joins the loader keys for display and journaling.
func Keys(loaders []Loader) string {
	keys := make([]string, len(loaders))
	for i, l := range loaders {
		keys[i] = l.Key()
	}
	return strings.Join(keys, ",")
}
