// Package cache is the client's query cache. Entries are keyed by entity
// kind and owner; every fetch carries a per-key sequence number so a
// response is applied only while its owner is still current and no newer
// response for the key has landed. A failure never displaces a success that
// was fetched after it started.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultSize = 128

// ErrSuperseded is returned by Fetch when its response was dropped because
// the owner changed or a newer response was applied first.
var ErrSuperseded = errors.New("response superseded")

type Kind string

const (
	KindTasks   Kind = "tasks"
	KindProfile Kind = "profile"
)

type Key struct {
	Kind  Kind
	Owner string
}

func (k Key) String() string {
	return string(k.Kind) + "/" + k.Owner
}

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

type entry struct {
	data    any
	hasData bool
	status  Status
	err     error
	version uint64
	stale   bool

	issued    uint64 // sequence of the last fetch started
	succeeded uint64 // sequence of the last success stored
	failed    uint64 // sequence of the last failure stored
}

// Snapshot is a typed copy of an entry.
type Snapshot[T any] struct {
	Key     Key
	Data    T
	HasData bool
	Status  Status
	Err     error
	Version uint64
	Stale   bool
}

// Loading reports a first load: a fetch is in flight and nothing is cached.
func (s Snapshot[T]) Loading() bool {
	return s.Status == StatusLoading && !s.HasData
}

// accepts reports whether the response of fetch seq may be stored. A
// success only has to be newer than the stored success; a failure must be
// newer than every stored response.
func (e *entry) accepts(seq uint64, success bool) bool {
	if success {
		return seq > e.succeeded
	}
	return seq > e.succeeded && seq > e.failed
}

// detach copies the task list and profile types so callers never share
// memory with a stored entry.
func detach[T any](v T) T {
	switch d := any(v).(type) {
	case []models.Task:
		return any(models.CloneTasks(d)).(T)
	case *models.Profile:
		return any(d.Clone()).(T)
	}
	return v
}

func snapshot[T any](key Key, e *entry) Snapshot[T] {
	s := Snapshot[T]{Key: key}
	if e == nil {
		return s
	}
	s.HasData = e.hasData
	s.Status = e.status
	s.Err = e.err
	s.Version = e.version
	s.Stale = e.stale
	if v, ok := e.data.(T); ok {
		s.Data = detach(v)
	}
	return s
}

// Store holds the cache entries in a bounded LRU. The zero value is not
// usable; create one with New.
type Store struct {
	mu      sync.Mutex
	entries *lru.Cache[Key, *entry]
	owner   string

	subMu   sync.Mutex
	subs    map[int]func(Key)
	nextSub int
}

func New(size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[Key, *entry](size)
	if err != nil {
		return nil, fmt.Errorf("cache init: %w", err)
	}
	return &Store{entries: entries, subs: make(map[int]func(Key))}, nil
}

// Owner returns the current owner.
func (s *Store) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// SetOwner switches the current owner and forgets every entry of other
// owners, so their in-flight responses have nowhere to land.
func (s *Store) SetOwner(owner string) {
	s.mu.Lock()
	if s.owner == owner {
		s.mu.Unlock()
		return
	}
	s.owner = owner
	var dropped []Key
	for _, k := range s.entries.Keys() {
		if k.Owner != owner {
			s.entries.Remove(k)
			dropped = append(dropped, k)
		}
	}
	s.mu.Unlock()

	for _, k := range dropped {
		s.publish(k)
	}
}

// Subscribe registers fn to run after an entry changes. The returned
// function removes it.
func (s *Store) Subscribe(fn func(Key)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) publish(key Key) {
	s.subMu.Lock()
	fns := make([]func(Key), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

// Invalidate marks the entry stale and bumps its version; the next read
// fetches again.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	e, ok := s.entries.Peek(key)
	if ok {
		e.stale = true
		e.version++
	}
	s.mu.Unlock()

	if ok {
		s.publish(key)
	}
}

// Peek returns the entry of key without fetching.
func Peek[T any](s *Store, key Key) Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, _ := s.entries.Peek(key)
	return snapshot[T](key, e)
}

// Fetch returns the cached value of key when it is fresh and otherwise
// calls fn. An empty owner disables the key: the snapshot is idle and fn is
// not called.
func Fetch[T any](ctx context.Context, s *Store, key Key, fn func(ctx context.Context) (T, error)) (Snapshot[T], error) {
	if key.Owner == "" {
		return Snapshot[T]{Key: key}, nil
	}

	s.mu.Lock()
	e, ok := s.entries.Get(key)
	if ok && e.hasData && !e.stale && e.status == StatusSuccess {
		snap := snapshot[T](key, e)
		s.mu.Unlock()
		return snap, nil
	}
	if !ok {
		if key.Owner != s.owner {
			s.mu.Unlock()
			return Snapshot[T]{Key: key}, ErrSuperseded
		}
		e = &entry{}
		s.entries.Add(key, e)
	}
	e.issued++
	seq := e.issued
	version := e.version
	e.status = StatusLoading
	s.mu.Unlock()
	s.publish(key)

	data, err := fn(ctx)

	s.mu.Lock()
	cur, ok := s.entries.Peek(key)
	if !ok || cur != e || key.Owner != s.owner || !e.accepts(seq, err == nil) {
		snap := snapshot[T](key, cur)
		s.mu.Unlock()
		return snap, ErrSuperseded
	}
	if err != nil {
		e.failed = seq
		e.status = StatusError
		e.err = err
	} else {
		e.succeeded = seq
		e.data = detach(data)
		e.hasData = true
		e.status = StatusSuccess
		e.err = nil
		// invalidated while in flight: keep the data but read again next time
		e.stale = e.version != version
	}
	snap := snapshot[T](key, e)
	s.mu.Unlock()
	s.publish(key)

	return snap, err
}
