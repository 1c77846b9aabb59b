// Package blob implements domain.ObjectStore over viant/afs. The base URL
// picks the backend: s3://bucket in production, file:// for local disk,
// mem:// in tests.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/option/content"

	// Registers the s3:// scheme.
	_ "github.com/viant/afsc/s3"

	"github.com/finnmcm/philo-ai/internal/domain"
)

type Store struct {
	fs      afs.Service
	baseURL string
}

// NewStore creates a store rooted at baseURL, e.g. "s3://philo-ai".
func NewStore(baseURL string) *Store {
	return &Store{
		fs:      afs.New(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *Store) objectURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

func (s *Store) keyFromURL(url string) string {
	return strings.TrimPrefix(strings.TrimPrefix(url, s.baseURL), "/")
}

// Put stores value bytes under key.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	meta := &content.Meta{Values: map[string]string{content.Type: contentType}}
	if err := s.fs.Upload(ctx, s.objectURL(key), 0644, bytes.NewReader(data), meta); err != nil {
		return classifyError(key, err)
	}
	return nil
}

// Get returns the bytes stored under key, or domain.ErrObjectNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	url := s.objectURL(key)

	ok, err := s.fs.Exists(ctx, url)
	if err != nil {
		return nil, classifyError(key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, key)
	}

	data, err := s.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, classifyError(key, err)
	}
	return data, nil
}

// List returns the keys of all objects under prefix, sorted. A missing
// prefix is an empty listing, not an error.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	objects, err := s.fs.List(ctx, s.objectURL(prefix))
	if err != nil {
		classified := classifyError(prefix, err)
		if errors.Is(classified, domain.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, classified
	}

	var keys []string
	for _, obj := range objects {
		if obj.IsDir() {
			continue
		}
		keys = append(keys, s.keyFromURL(obj.URL()))
	}
	sort.Strings(keys)
	return keys, nil
}

// classifyError maps provider failures onto the two outward signals the
// service distinguishes: access denied and not found. Everything else stays
// a generic storage error.
func classifyError(key string, err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "accessdenied") ||
		strings.Contains(msg, "access denied") ||
		strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "403"):
		return fmt.Errorf("%w: %s: %v", domain.ErrAccessDenied, key, err)
	case strings.Contains(msg, "not found") ||
		strings.Contains(msg, "doesn't exist") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such file") ||
		strings.Contains(msg, "404"):
		return fmt.Errorf("%w: %s", domain.ErrObjectNotFound, key)
	default:
		return fmt.Errorf("storage error for %s: %w", key, err)
	}
}
