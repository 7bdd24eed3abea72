// Package taskstore owns the task list: it applies mutations, computes the
// filtered and searched view, and writes the whole list to a slot after every
// change.
package taskstore

import (
	"fmt"
	"slices"
	"sync"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/infra/codec"
)

// Log category used by the store.
const logCategory = "store"

// ClearPrompt is the question asked before completed tasks are removed.
const ClearPrompt = "Are you sure you want to clear all completed tasks?"

// Store is the single owner of the task sequence.
// Tasks are kept newest first. Callers only ever receive copies.
// Fields are ordered to minimize memory padding.
type Store struct {
	slot      domain.Slot
	clock     domain.Clock
	logger    domain.Logger
	tasks     []domain.Task
	slotOpts  domain.SlotOptions
	key       string
	search    string
	filter    domain.Filter
	lastID    int64
	editing   int64
	mu        sync.Mutex
	isEditing bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for ids and creation times.
func WithClock(c domain.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the operational logger.
func WithLogger(l domain.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithKey overrides the slot key (default "todos").
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithSlotOptions overrides the retention and scope of every write.
func WithSlotOptions(opts domain.SlotOptions) Option {
	return func(s *Store) { s.slotOpts = opts }
}

// WithFilter sets the initial view filter.
func WithFilter(f domain.Filter) Option {
	return func(s *Store) { s.filter = f }
}

// New creates a Store and loads the snapshot held by slot.
// Loading never fails: a missing, unreadable or corrupt snapshot yields an
// empty list and a warning in the log.
func New(slot domain.Slot, opts ...Option) *Store {
	s := &Store{
		slot:     slot,
		clock:    domain.RealClock{},
		logger:   domain.NopLogger{},
		key:      domain.DefaultSlotKey,
		slotOpts: domain.NewDefaultConfig().SlotOptions(),
		filter:   domain.FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	value, ok, err := s.slot.Read(s.key)
	if err != nil {
		s.logger.Warn(0, logCategory, fmt.Sprintf("read snapshot %q: %v; starting empty", s.key, err))
		return
	}
	if !ok {
		s.logger.Info(0, logCategory, fmt.Sprintf("no snapshot under %q; starting empty", s.key))
		return
	}
	tasks, err := codec.Decode(value)
	if err != nil {
		s.logger.Warn(0, logCategory, fmt.Sprintf("decode snapshot %q: %v; starting empty", s.key, err))
		return
	}

	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		in, err := t.Input().Normalize()
		if err != nil {
			s.logger.Warn(t.ID, logCategory, fmt.Sprintf("dropping stored task: %v", err))
			continue
		}
		if seen[t.ID] {
			s.logger.Warn(t.ID, logCategory, "dropping stored task: duplicate id")
			continue
		}
		seen[t.ID] = true
		t.Apply(in)
		s.tasks = append(s.tasks, t)
		s.lastID = max(s.lastID, t.ID)
	}
	s.logger.Info(0, logCategory, fmt.Sprintf("loaded %d tasks", len(s.tasks)))
}

// persist writes the whole list to the slot. The caller holds s.mu.
func (s *Store) persist() error {
	value, err := codec.Encode(s.tasks)
	if err != nil {
		s.logger.Error(0, logCategory, err.Error())
		return err
	}
	if err := s.slot.Write(s.key, value, s.slotOpts); err != nil {
		s.logger.Error(0, logCategory, fmt.Sprintf("write snapshot %q: %v", s.key, err))
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// nextID returns a timestamp-based id that is larger than every id handed out
// or loaded so far. The caller holds s.mu.
func (s *Store) nextID() int64 {
	id := max(s.clock.Now().UnixMilli(), s.lastID+1)
	s.lastID = id
	return id
}

// indexOf returns the position of id, or -1. The caller holds s.mu.
func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}

// Create adds a task at the front of the list and persists.
// The text is trimmed; a blank text is rejected with domain.ErrEmptyText.
// On a persistence error the task is still created and returned with the error.
func (s *Store) Create(in domain.TaskInput) (domain.Task, error) {
	in, err := in.Normalize()
	if err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := domain.Task{
		ID:        s.nextID(),
		CreatedAt: s.clock.Now(),
	}
	t.Apply(in)
	s.tasks = slices.Insert(s.tasks, 0, t)
	s.logger.Info(t.ID, logCategory, fmt.Sprintf("created %q", t.Text))

	return t, s.persist()
}

// Update overwrites the editable fields of the task in place and persists.
// It reports false, without error, when no task has the id.
func (s *Store) Update(id int64, in domain.TaskInput) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	in, err := in.Normalize()
	if err != nil {
		return false, err
	}
	s.tasks[i].Apply(in)
	s.logger.Info(id, logCategory, fmt.Sprintf("updated %q", in.Text))

	return true, s.persist()
}

// ToggleComplete flips the completed flag and persists.
// It reports false when no task has the id.
func (s *Store) ToggleComplete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Info(id, logCategory, fmt.Sprintf("completed=%t", s.tasks[i].Completed))

	return true, s.persist()
}

// Delete removes the task. Deleting an unknown id is a no-op and writes nothing.
func (s *Store) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	if s.isEditing && s.editing == id {
		s.isEditing = false
	}
	s.logger.Info(id, logCategory, "deleted")

	return true, s.persist()
}

// clearCompleted removes every completed task and persists.
func (s *Store) clearCompleted() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t domain.Task) bool {
		if t.Completed && s.isEditing && t.ID == s.editing {
			s.isEditing = false
		}
		return t.Completed
	})
	removed := before - len(s.tasks)
	s.logger.Info(0, logCategory, fmt.Sprintf("cleared %d completed tasks", removed))

	return removed, s.persist()
}

// Get returns a copy of the task with the id.
func (s *Store) Get(id int64) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the whole list, newest first.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stats summarizes the whole list, ignoring the current filter and search.
func (s *Store) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeStats(s.tasks)
}
