package directoryserver

import (
	"context"
	"sync"

	"e2ekeys/internal/domain"
)

type member struct {
	userID   domain.UserID
	userName string
}

// MemoryStore keeps all directory state in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	keys    map[domain.UserID]domain.PublicKeyRecord
	members map[domain.GroupID][]member
	bundles map[domain.GroupID]Bundle
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		keys:    make(map[domain.UserID]domain.PublicKeyRecord),
		members: make(map[domain.GroupID][]member),
		bundles: make(map[domain.GroupID]Bundle),
	}
}

func (s *MemoryStore) RegisterKey(_ context.Context, rec domain.PublicKeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[rec.UserID]; ok {
		return ErrExists
	}
	s.keys[rec.UserID] = rec
	return nil
}

func (s *MemoryStore) ReplaceKey(_ context.Context, rec domain.PublicKeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[rec.UserID] = rec
	return nil
}

func (s *MemoryStore) Key(_ context.Context, userID domain.UserID) (domain.PublicKeyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.keys[userID]
	return rec, ok, nil
}

func (s *MemoryStore) AddMember(_ context.Context, groupID domain.GroupID, userID domain.UserID, userName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.members[groupID]
	for i := range ms {
		if ms[i].userID == userID {
			ms[i].userName = userName
			return nil
		}
	}
	s.members[groupID] = append(ms, member{userID: userID, userName: userName})
	return nil
}

func (s *MemoryStore) Members(_ context.Context, groupID domain.GroupID) ([]domain.GroupMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GroupMember, 0, len(s.members[groupID]))
	for _, m := range s.members[groupID] {
		gm := domain.GroupMember{UserID: m.userID, UserName: m.userName}
		if rec, ok := s.keys[m.userID]; ok {
			gm.PublicKey = rec.PublicKey
			gm.KeyID = rec.KeyID
		}
		out = append(out, gm)
	}
	return out, nil
}

func (s *MemoryStore) PublishBundle(_ context.Context, groupID domain.GroupID, b Bundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles[groupID] = b
	return nil
}

func (s *MemoryStore) WrappedKey(_ context.Context, groupID domain.GroupID, userID domain.UserID) (domain.WrappedGroupKey, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bundles[groupID]
	if !ok {
		return domain.WrappedGroupKey{}, false, nil
	}
	wk, ok := wrappedFor(b, userID)
	return wk, ok, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
