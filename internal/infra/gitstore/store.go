// Package gitstore provides a Git plumbing-based implementation of domain.Slot.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/tasklist/internal/domain"
)

// Store implements domain.Slot using Git refs and blobs.
//
// Data structure:
//
//	<prefix>/
//	  <key>  → blob (slot YAML)
//
// Refs are outside refs/heads, so they never show up as branches and
// survive checkouts.
type Store struct {
	repo   *git.Repository
	clock  domain.Clock
	prefix string // e.g., "refs/tasklist"
	mu     sync.RWMutex
}

// slotData is the blob content of a slot.
type slotData struct {
	ExpiresAt *time.Time `yaml:"expiresAt,omitempty"`
	Path      string     `yaml:"path"`
	Value     string     `yaml:"value"`
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for expiry.
func WithClock(c domain.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithPrefix overrides the ref prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = strings.TrimSuffix(prefix, "/") }
}

// New opens the repository at repoPath.
// The repository is searched upwards from repoPath like git does.
func New(repoPath string, opts ...Option) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, opts...), nil
}

// NewWithRepo creates a Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		clock:  domain.RealClock{},
		prefix: domain.DefaultGitPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// slotRef returns the ref name for a slot key.
func (s *Store) slotRef(key string) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.prefix + "/" + key)
}

// Read returns the value stored under key. Expired slots are reported as missing.
func (s *Store) Read(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.slotRef(key), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get slot ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, false, err
	}

	var slot slotData
	if err := yaml.Unmarshal(data, &slot); err != nil {
		return nil, false, fmt.Errorf("unmarshal slot: %w", err)
	}
	if slot.ExpiresAt != nil && !s.clock.Now().Before(*slot.ExpiresAt) {
		return nil, false, nil
	}
	return []byte(slot.Value), true, nil
}

// Write stores the value as a new blob and points the slot ref at it.
func (s *Store) Write(key string, value []byte, opts domain.SlotOptions) error {
	name := s.slotRef(key)
	if err := name.Validate(); err != nil {
		return fmt.Errorf("invalid slot key %q: %w", key, err)
	}

	slot := slotData{Path: opts.Path, Value: string(value)}
	if opts.MaxAge > 0 {
		expires := s.clock.Now().Add(opts.MaxAge).UTC()
		slot.ExpiresAt = &expires
	}
	data, err := yaml.Marshal(&slot)
	if err != nil {
		return fmt.Errorf("marshal slot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(name, hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set slot ref: %w", err)
	}
	return nil
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads the full content of a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}

// Ensure Store implements Slot.
var _ domain.Slot = (*Store)(nil)
