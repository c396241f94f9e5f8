package store

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/template"
)

const fileExt = ".toml"

// FileStore keeps each template in <dir>/<id>.toml.
type FileStore struct {
	dir string
	mu  sync.RWMutex
	now func() time.Time
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// DefaultDir returns the XDG data directory for app
// ($XDG_DATA_HOME/app/templates, falling back to ~/.local/share).
func DefaultDir(app string) (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, app, "templates"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", app, "templates"), nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Get(ctx context.Context, id string) (*template.Document, error) {
	if err := errors.ValidateTemplateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) read(id string) (*template.Document, error) {
	doc, err := template.Load(s.path(id))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	doc.ID = id
	return doc, nil
}

func (s *FileStore) Put(ctx context.Context, doc *template.Document) error {
	if err := prepare(doc, s.now()); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return template.Save(s.path(doc.ID), doc)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateTemplateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	return err
}

// List skips files that fail to parse.
func (s *FileStore) List(ctx context.Context) ([]*template.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	var docs []*template.Document
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := s.read(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	sortNewestFirst(docs)
	return docs, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

func sortNewestFirst(docs []*template.Document) {
	slices.SortFunc(docs, func(a, b *template.Document) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

var _ Store = (*FileStore)(nil)
