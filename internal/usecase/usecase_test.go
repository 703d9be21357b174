package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"candidatehub-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id any) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindOne(ctx context.Context, p domain.Predicate) (*domain.Candidate, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindAll(ctx context.Context, p domain.Predicate) ([]*domain.Candidate, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetAll(ctx context.Context) ([]*domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Any(ctx context.Context, p domain.Predicate) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) Add(c *domain.Candidate)    { m.Called(c) }
func (m *MockCandidateRepo) Update(c *domain.Candidate) { m.Called(c) }
func (m *MockCandidateRepo) Delete(c *domain.Candidate) { m.Called(c) }

type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Candidates() domain.CandidateRepository {
	return m.Called().Get(0).(domain.CandidateRepository)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUnitOfWork) Rollback() { m.Called() }

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// candidateStore is an in-memory table shared by every unit of work it opens.
type candidateStore struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]domain.Candidate
	reads int
}

func newCandidateStore() *candidateStore {
	return &candidateStore{rows: make(map[uuid.UUID]domain.Candidate)}
}

func (s *candidateStore) factory() domain.UnitOfWorkFactory {
	return func() domain.UnitOfWork { return &storeUnitOfWork{store: s} }
}

func (s *candidateStore) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *candidateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type storeUnitOfWork struct {
	store   *candidateStore
	staged  []*domain.Candidate
	deleted []*domain.Candidate
}

func (u *storeUnitOfWork) Candidates() domain.CandidateRepository {
	return &storeRepo{uow: u}
}

func (u *storeUnitOfWork) Commit(context.Context) (int, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	n := 0
	for _, c := range u.staged {
		u.store.rows[c.ID] = *c
		n++
	}
	for _, c := range u.deleted {
		delete(u.store.rows, c.ID)
		n++
	}
	u.staged, u.deleted = nil, nil
	return n, nil
}

func (u *storeUnitOfWork) Rollback() {
	u.staged, u.deleted = nil, nil
}

type storeRepo struct {
	uow *storeUnitOfWork
}

func (r *storeRepo) GetByID(_ context.Context, id any) (*domain.Candidate, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++

	key, _ := id.(uuid.UUID)
	row, ok := s.rows[key]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *storeRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	return r.FindOne(ctx, domain.EqFold(domain.CandidateFieldEmail, email))
}

func (r *storeRepo) FindOne(ctx context.Context, p domain.Predicate) (*domain.Candidate, error) {
	all, err := r.FindAll(ctx, p)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *storeRepo) FindAll(_ context.Context, p domain.Predicate) ([]*domain.Candidate, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++

	var out []*domain.Candidate
	for _, row := range s.rows {
		if matches(row, p) {
			c := row
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *storeRepo) GetAll(ctx context.Context) ([]*domain.Candidate, error) {
	return r.FindAll(ctx, domain.Predicate{})
}

func (r *storeRepo) Any(ctx context.Context, p domain.Predicate) (bool, error) {
	all, err := r.FindAll(ctx, p)
	return len(all) > 0, err
}

func (r *storeRepo) Add(c *domain.Candidate)    { r.uow.staged = append(r.uow.staged, c) }
func (r *storeRepo) Update(c *domain.Candidate) { r.uow.staged = append(r.uow.staged, c) }
func (r *storeRepo) Delete(c *domain.Candidate) { r.uow.deleted = append(r.uow.deleted, c) }

func matches(c domain.Candidate, p domain.Predicate) bool {
	for _, cond := range p.Conditions {
		if cond.Field != domain.CandidateFieldEmail {
			return false
		}
		v, _ := cond.Value.(string)
		switch cond.Op {
		case domain.OpEq:
			if c.Email != v {
				return false
			}
		case domain.OpEqFold:
			if !strings.EqualFold(c.Email, v) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
