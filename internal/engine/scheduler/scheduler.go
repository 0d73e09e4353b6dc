// Package scheduler runs keyed per-frame tasks.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrTaskExists is returned when registering a key that is already active.
	ErrTaskExists = errors.New("task already registered")
	// ErrTaskNotFound is returned when unregistering an unknown key.
	ErrTaskNotFound = errors.New("task not registered")
)

// TaskKey identifies a registration. Owner keeps keys from different
// objects apart even when they reuse the same task name.
type TaskKey struct {
	Owner uuid.UUID
	Name  string
}

func (k TaskKey) String() string {
	return k.Name + "/" + k.Owner.String()
}

// TaskFunc is called once per frame with the seconds elapsed since the
// previous frame.
type TaskFunc func(dt float64) error

type task struct {
	key  TaskKey
	fn   TaskFunc
	dead bool
}

// Scheduler runs registered tasks in registration order, once per Step.
// It is meant for the main loop thread only.
type Scheduler struct {
	tasks []*task
	index map[TaskKey]*task
	log   *zap.Logger
	frame uint64
}

// New creates an empty scheduler.
func New(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		index: make(map[TaskKey]*task),
		log:   log,
	}
}

// Register adds a task under key.
func (s *Scheduler) Register(key TaskKey, fn TaskFunc) error {
	if fn == nil {
		return fmt.Errorf("register %s: nil task", key)
	}
	if _, ok := s.index[key]; ok {
		return fmt.Errorf("register %s: %w", key, ErrTaskExists)
	}

	t := &task{key: key, fn: fn}
	s.tasks = append(s.tasks, t)
	s.index[key] = t
	s.log.Debug("task registered", zap.Stringer("key", key))
	return nil
}

// Unregister removes the task under key. Once it returns the task is never
// called again, even when Unregister runs from inside a Step.
func (s *Scheduler) Unregister(key TaskKey) error {
	t, ok := s.index[key]
	if !ok {
		return fmt.Errorf("unregister %s: %w", key, ErrTaskNotFound)
	}

	t.dead = true
	delete(s.index, key)
	for i, other := range s.tasks {
		if other == t {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			break
		}
	}
	s.log.Debug("task unregistered", zap.Stringer("key", key))
	return nil
}

// Has reports whether key is registered.
func (s *Scheduler) Has(key TaskKey) bool {
	_, ok := s.index[key]
	return ok
}

// Len returns the number of registered tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Frame returns how many steps have run.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Step runs every task once. The first failing task aborts the frame.
func (s *Scheduler) Step(dt float64) error {
	s.frame++

	// Tasks registered during this step start next frame.
	run := make([]*task, len(s.tasks))
	copy(run, s.tasks)

	for _, t := range run {
		if t.dead {
			continue
		}
		if err := t.fn(dt); err != nil {
			return fmt.Errorf("task %s: %w", t.key, err)
		}
	}
	return nil
}
