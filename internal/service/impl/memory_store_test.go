package impl

import (
	"context"
	"sort"
	"sync"
	"time"

	"nexus-api/internal/domain"
	"nexus-api/internal/store"
)

// memoryStore is an in-memory dataStore with the same error contract as the
// gorm store: store.ErrRecordNotFound and store.ErrDuplicateKey.
type memoryStore struct {
	mu         sync.Mutex
	persons    map[domain.PersonID]*domain.Person
	messages   map[domain.MessageID]*domain.Message
	nextPerson domain.PersonID
	nextMsg    domain.MessageID
	txCalls    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		persons:  make(map[domain.PersonID]*domain.Person),
		messages: make(map[domain.MessageID]*domain.Message),
	}
}

func (m *memoryStore) Persons() personStore   { return &memoryPersonStore{store: m} }
func (m *memoryStore) Messages() messageStore { return &memoryMessageStore{store: m} }

func (m *memoryStore) WithTx(ctx context.Context, fn func(tx dataStore) error) error {
	m.mu.Lock()
	m.txCalls++
	m.mu.Unlock()
	return fn(m)
}

// seedPerson inserts a person directly, bypassing hashing.
func (m *memoryStore) seedPerson(email, name string, active bool) *domain.Person {
	p := &domain.Person{Email: email, Name: name, PasswordHash: "hash:" + email, Active: active}
	if err := m.Persons().Create(context.Background(), p); err != nil {
		panic(err)
	}
	if !active {
		m.mu.Lock()
		m.persons[p.ID].Active = false
		m.mu.Unlock()
	}
	return p
}

type memoryPersonStore struct{ store *memoryStore }

func (s *memoryPersonStore) Create(_ context.Context, p *domain.Person) error {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.persons {
		if existing.Email == p.Email {
			return store.ErrDuplicateKey
		}
	}
	m.nextPerson++
	now := time.Now().UTC()
	p.ID = m.nextPerson
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	m.persons[p.ID] = &cp
	return nil
}

func (s *memoryPersonStore) List(_ context.Context, limit, offset int) ([]domain.Person, error) {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Person, 0, len(m.persons))
	for _, p := range m.persons {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (s *memoryPersonStore) get(id domain.PersonID, activeOnly bool) (*domain.Person, error) {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.persons[id]
	if !ok || (activeOnly && !p.Active) {
		return nil, store.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memoryPersonStore) GetByID(_ context.Context, id domain.PersonID) (*domain.Person, error) {
	return s.get(id, false)
}

func (s *memoryPersonStore) GetActiveByID(_ context.Context, id domain.PersonID) (*domain.Person, error) {
	return s.get(id, true)
}

func (s *memoryPersonStore) GetActiveByEmail(_ context.Context, email string) (*domain.Person, error) {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.persons {
		if p.Email == email && p.Active {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

func (s *memoryPersonStore) Update(_ context.Context, p *domain.Person) error {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.persons {
		if id != p.ID && existing.Email == p.Email {
			return store.ErrDuplicateKey
		}
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	m.persons[p.ID] = &cp
	return nil
}

func (s *memoryPersonStore) Delete(_ context.Context, id domain.PersonID) error {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.persons[id]; !ok {
		return store.ErrRecordNotFound
	}
	delete(m.persons, id)
	return nil
}

type memoryMessageStore struct{ store *memoryStore }

func (s *memoryMessageStore) withParticipants(msg domain.Message) domain.Message {
	if p, ok := s.store.persons[msg.FromID]; ok {
		msg.From = domain.Person{ID: p.ID, Name: p.Name}
	}
	if p, ok := s.store.persons[msg.ToID]; ok {
		msg.To = domain.Person{ID: p.ID, Name: p.Name}
	}
	return msg
}

func (s *memoryMessageStore) Create(_ context.Context, msg *domain.Message) error {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextMsg++
	now := time.Now().UTC()
	msg.ID = m.nextMsg
	msg.CreatedAt, msg.UpdatedAt = now, now
	cp := *msg
	cp.From, cp.To = domain.Person{}, domain.Person{}
	m.messages[msg.ID] = &cp
	return nil
}

func (s *memoryMessageStore) List(_ context.Context, limit, offset int) ([]domain.Message, error) {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, s.withParticipants(*msg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

func (s *memoryMessageStore) GetByID(_ context.Context, id domain.MessageID) (*domain.Message, error) {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := s.withParticipants(*msg)
	return &cp, nil
}

func (s *memoryMessageStore) Update(_ context.Context, msg *domain.Message) error {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[msg.ID]; !ok {
		return store.ErrRecordNotFound
	}
	msg.UpdatedAt = time.Now().UTC()
	cp := *msg
	cp.From, cp.To = domain.Person{}, domain.Person{}
	m.messages[msg.ID] = &cp
	return nil
}

func (s *memoryMessageStore) Delete(_ context.Context, id domain.MessageID) error {
	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[id]; !ok {
		return store.ErrRecordNotFound
	}
	delete(m.messages, id)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
