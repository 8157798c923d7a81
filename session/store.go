package session

import (
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/lithiumheat/studio"
)

const (
	// DefaultTTL keeps a task for the lifetime of a typical working session.
	DefaultTTL = 12 * time.Hour

	minCleanupInterval = time.Minute
)

// Store is the in-memory task history.
type Store struct {
	tasks *cache.Cache
}

// NewStore creates a Store whose entries expire after ttl.
// A non-positive ttl keeps entries until the process exits.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		return &Store{tasks: cache.New(cache.NoExpiration, 0)}
	}
	cleanup := ttl / 2
	if cleanup < minCleanupInterval {
		cleanup = minCleanupInterval
	}
	return &Store{tasks: cache.New(ttl, cleanup)}
}

// Put adds or replaces a task.
func (s *Store) Put(task studio.TaskGroup) {
	s.tasks.Set(task.ID, task, cache.DefaultExpiration)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (studio.TaskGroup, bool) {
	v, ok := s.tasks.Get(id)
	if !ok {
		return studio.TaskGroup{}, false
	}
	task, ok := v.(studio.TaskGroup)
	return task, ok
}

// List returns the tasks of mode, newest first. An empty mode lists all.
func (s *Store) List(mode studio.Mode) []studio.TaskGroup {
	items := s.tasks.Items()
	tasks := make([]studio.TaskGroup, 0, len(items))
	for _, item := range items {
		task, ok := item.Object.(studio.TaskGroup)
		if !ok {
			continue
		}
		if mode != "" && task.Mode != mode {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Timestamp.Equal(tasks[j].Timestamp) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].Timestamp.After(tasks[j].Timestamp)
	})
	return tasks
}

// Len returns the number of live tasks.
func (s *Store) Len() int {
	return s.tasks.ItemCount()
}
