package db

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Store is what the HTTP handlers need from person storage.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (Person, error)
	Insert(ctx context.Context, person Person) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]Person, error)
}

type shard struct {
	mu     sync.RWMutex
	people map[uuid.UUID]Person
}

// MemoryStore keeps people in lock-striped maps. Each id hashes to one
// shard, and only that shard's lock is taken for Get and Insert.
type MemoryStore struct {
	shards []*shard
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store with the given number of shards (at least
// one) preloaded with seed.
func NewMemoryStore(shards int, seed ...Person) *MemoryStore {
	if shards < 1 {
		shards = 1
	}

	s := &MemoryStore{shards: make([]*shard, shards)}
	for i := range s.shards {
		s.shards[i] = &shard{people: make(map[uuid.UUID]Person)}
	}

	for _, person := range seed {
		s.shardFor(person.ID).people[person.ID] = person.clone()
	}

	return s
}

func (s *MemoryStore) shardFor(id uuid.UUID) *shard {
	return s.shards[xxhash.Sum64(id[:])%uint64(len(s.shards))]
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (Person, error) {
	sh := s.shardFor(id)

	sh.mu.RLock()
	person, ok := sh.people[id]
	sh.mu.RUnlock()

	if !ok {
		return Person{}, fmt.Errorf("get person %s: %w", id, ErrNotFound)
	}

	return person.clone(), nil
}

func (s *MemoryStore) Insert(_ context.Context, person Person) error {
	sh := s.shardFor(person.ID)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.people[person.ID]; exists {
		return fmt.Errorf("insert person %s: %w", person.ID, ErrDuplicateID)
	}

	sh.people[person.ID] = person.clone()
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	unlock := s.rlockAll()
	defer unlock()

	count := 0
	for _, sh := range s.shards {
		count += len(sh.people)
	}

	return count, nil
}

// List returns every person ordered by id. Ids are UUIDv7, so this is
// creation order.
func (s *MemoryStore) List(_ context.Context) ([]Person, error) {
	unlock := s.rlockAll()

	people := []Person{}
	for _, sh := range s.shards {
		for _, person := range sh.people {
			people = append(people, person.clone())
		}
	}

	unlock()

	slices.SortFunc(people, func(a, b Person) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})

	return people, nil
}

// rlockAll read-locks every shard in index order. Writers only ever hold a
// single shard lock, so this cannot deadlock against them.
func (s *MemoryStore) rlockAll() func() {
	for _, sh := range s.shards {
		sh.mu.RLock()
	}

	return func() {
		for _, sh := range s.shards {
			sh.mu.RUnlock()
		}
	}
}
