package cron

import "sync"

// Tab (crontab is short for cron table) defines the registry storage for the
// executor. Jobs are keyed by name; putting a job under an existing name
// replaces it.
type Tab interface {
	// Stores a job under its name, replacing any previous job with that name.
	Put(*Job) error

	// Returns the job registered under name, or nil if absent.
	Get(name string) (*Job, error)

	// Removes the job registered under name, if present.
	Remove(name string) error

	// Returns a snapshot of all registered jobs.
	All() ([]*Job, error)

	// Returns the number of registered jobs.
	Len() int

	// Clears all jobs.
	Clear() error
}

// NewMemoryTab returns an in-memory Tab. This is a non-persistent storage.
func NewMemoryTab() *MemoryTab {
	return &MemoryTab{
		jobs: make(map[string]*Job),
	}
}

// MemoryTab is a simple storage backend.
type MemoryTab struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// Put overrides a job in the tab.
func (m *MemoryTab) Put(j *Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs[j.Name()] = j
	return nil
}

// Get returns the job registered under name, or nil.
func (m *MemoryTab) Get(name string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.jobs[name], nil
}

// Remove deletes a job from the tab.
func (m *MemoryTab) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.jobs, name)
	return nil
}

// Len returns the number of registered jobs.
func (m *MemoryTab) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.jobs)
}

// Clear deletes all jobs from the tab.
func (m *MemoryTab) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs = make(map[string]*Job)
	return nil
}

// All returns a snapshot of all jobs in the tab. The slice is safe to iterate
// while other goroutines mutate the tab.
func (m *MemoryTab) All() ([]*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		res = append(res, j)
	}
	return res, nil
}
