package bloom

import "sync"

// Locked serialises access to a Filter so that a single instance can be
// shared between goroutines. Add and Clear take the write lock, everything
// else takes the read lock.
type Locked struct {
	mu sync.RWMutex
	f  *Filter
}

// NewLocked wraps f. The caller must not use f directly afterwards.
func NewLocked(f *Filter) *Locked {
	return &Locked{f: f}
}

func (l *Locked) Add(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.f.Add(data)
}

// TestAndAdd reports whether data was possibly present, then adds it, as a
// single atomic step.
func (l *Locked) TestAndAdd(data []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	present := l.f.Contains(data)
	l.f.Add(data)
	return present
}

func (l *Locked) Contains(data []byte) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.Contains(data)
}

func (l *Locked) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.f.Clear()
}

func (l *Locked) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.Count()
}

func (l *Locked) CurrentFalsePositiveRate() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.CurrentFalsePositiveRate()
}

// MarshalBinary encodes a consistent snapshot of the wrapped filter.
func (l *Locked) MarshalBinary() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.f.MarshalBinary()
}
