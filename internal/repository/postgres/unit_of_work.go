package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"candidatehub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

var (
	// ErrDuplicateKey marks a flush rejected by a unique index. Callers map it
	// like any other commit failure; it is kept for logs and errors.Is checks.
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrEntityNotFound    = errors.New("entity no longer exists")
	ErrTransactionActive = errors.New("transaction already open")
	ErrNoTransaction     = errors.New("no open transaction")
)

type entityState int

const (
	stateUnchanged entityState = iota
	stateAdded
	stateModified
	stateDeleted
)

func (s entityState) String() string {
	switch s {
	case stateAdded:
		return "added"
	case stateModified:
		return "modified"
	case stateDeleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// trackedEntry is the type-erased view of an entity the unit of work tracks.
type trackedEntry struct {
	entity  any
	state   entityState
	flush   func(ctx context.Context, q Querier, state entityState) (int64, error)
	restore func() // copy the last accepted snapshot back into the entity
	accept  func() // take a new snapshot after a successful commit
	detach  func()
}

// UnitOfWork tracks entities loaded or staged through its repositories and
// flushes them in one transaction. It is meant for a single request.
type UnitOfWork struct {
	db  DB
	log *zap.Logger

	mu      sync.Mutex
	repos   map[any]any
	entries []*trackedEntry
	index   map[any]*trackedEntry

	// tx is the ambient transaction opened by BeginTransaction; nil when none.
	tx pgx.Tx
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(db DB, log *zap.Logger) *UnitOfWork {
	if log == nil {
		log = zap.NewNop()
	}
	return &UnitOfWork{
		db:    db,
		log:   log,
		repos: make(map[any]any),
		index: make(map[any]*trackedEntry),
	}
}

// NewUnitOfWorkFactory returns a factory producing a fresh unit of work per call.
func NewUnitOfWorkFactory(db DB, log *zap.Logger) domain.UnitOfWorkFactory {
	return func() domain.UnitOfWork {
		return NewUnitOfWork(db, log)
	}
}

// RepositoryFor returns the repository for et, constructing it on first use.
// The same instance is returned for the lifetime of u.
func RepositoryFor[T any](u *UnitOfWork, et *EntityType[T]) domain.Repository[T] {
	u.mu.Lock()
	defer u.mu.Unlock()

	if repo, ok := u.repos[et]; ok {
		return repo.(domain.Repository[T])
	}

	ctor := et.NewRepository
	if ctor == nil {
		ctor = newGenericRepository[T]
	}
	repo := ctor(u, et)
	u.repos[et] = repo
	return repo
}

func (u *UnitOfWork) Candidates() domain.CandidateRepository {
	return RepositoryFor(u, CandidateEntity).(domain.CandidateRepository)
}

// Commit flushes every staged change. Inside an ambient transaction the
// changes are written to it and it stays open; otherwise a transaction is
// opened and committed here. On failure the transaction is rolled back, the
// staged changes stay staged and the original error is returned.
func (u *UnitOfWork) Commit(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	pending := u.pendingLocked()
	if len(pending) == 0 {
		return 0, nil
	}

	if u.tx != nil {
		n, err := flushAll(ctx, u.tx, pending)
		if err != nil {
			// a failed statement aborts the postgres transaction
			u.rollbackTxLocked(ctx)
			return 0, err
		}
		u.acceptLocked(pending)
		return n, nil
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("unit of work: begin: %w", err)
	}

	n, err := flushAll(ctx, tx, pending)
	if err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.log.Error("unit of work: rollback after failed flush", zap.Error(rbErr))
		}
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("unit of work: commit: %w", err)
	}

	u.acceptLocked(pending)
	u.log.Debug("unit of work committed", zap.Int("changes", len(pending)), zap.Int("rows", n))
	return n, nil
}

// Rollback reverts staged changes in memory: modified and deleted entities get
// their last committed values back, added entities are forgotten. It does not
// touch storage, never fails and swallows internal errors.
func (u *UnitOfWork) Rollback() {
	defer func() {
		if r := recover(); r != nil {
			u.log.Warn("unit of work: rollback of tracked changes failed", zap.Any("panic", r))
		}
	}()

	u.mu.Lock()
	defer u.mu.Unlock()

	for _, e := range append([]*trackedEntry(nil), u.entries...) {
		switch e.state {
		case stateModified, stateDeleted:
			e.restore()
			e.state = stateUnchanged
		case stateAdded:
			u.untrackLocked(e)
		}
	}
}

// BeginTransaction opens the ambient transaction reused by Commit until
// CommitTransaction or RollbackTransaction closes it.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx != nil {
		return ErrTransactionActive
	}
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("unit of work: begin: %w", err)
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return ErrNoTransaction
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("unit of work: commit: %w", err)
	}
	return nil
}

func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return ErrNoTransaction
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("unit of work: rollback: %w", err)
	}
	return nil
}

func (u *UnitOfWork) InTransaction() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tx != nil
}

// PendingChanges counts staged entities.
func (u *UnitOfWork) PendingChanges() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.pendingLocked())
}

func (u *UnitOfWork) querier() Querier {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWork) rollbackTxLocked(ctx context.Context) {
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.log.Error("unit of work: rollback of ambient transaction", zap.Error(err))
	}
}

func (u *UnitOfWork) pendingLocked() []*trackedEntry {
	var pending []*trackedEntry
	for _, e := range u.entries {
		if e.state != stateUnchanged {
			pending = append(pending, e)
		}
	}
	return pending
}

func (u *UnitOfWork) acceptLocked(pending []*trackedEntry) {
	for _, e := range pending {
		if e.state == stateDeleted {
			u.untrackLocked(e)
			continue
		}
		e.accept()
		e.state = stateUnchanged
	}
}

func (u *UnitOfWork) trackLocked(e *trackedEntry) {
	u.entries = append(u.entries, e)
	u.index[e.entity] = e
}

func (u *UnitOfWork) untrackLocked(e *trackedEntry) {
	delete(u.index, e.entity)
	for i, cur := range u.entries {
		if cur == e {
			u.entries = append(u.entries[:i], u.entries[i+1:]...)
			break
		}
	}
	e.detach()
}

func flushAll(ctx context.Context, q Querier, pending []*trackedEntry) (int, error) {
	total := 0
	for _, e := range pending {
		n, err := e.flush(ctx, q, e.state)
		if err != nil {
			return 0, mapStorageError(err)
		}
		total += int(n)
	}
	return total, nil
}

func mapStorageError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s: %w", ErrDuplicateKey, pgErr.ConstraintName, err)
	}
	return err
}
