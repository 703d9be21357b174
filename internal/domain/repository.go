package domain

import "context"

// Op is a comparison understood by repository predicates.
type Op string

const (
	OpEq     Op = "eq"
	OpNotEq  Op = "neq"
	OpEqFold Op = "eq_fold" // case-insensitive string equality
)

// Condition compares one entity field with a value.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Predicate is a conjunction of conditions. The zero value matches every row.
type Predicate struct {
	Conditions []Condition
}

func Where(field string, op Op, value any) Predicate {
	return Predicate{Conditions: []Condition{{Field: field, Op: op, Value: value}}}
}

func Eq(field string, value any) Predicate {
	return Where(field, OpEq, value)
}

func EqFold(field string, value string) Predicate {
	return Where(field, OpEqFold, value)
}

// And returns a new predicate with one more condition.
func (p Predicate) And(field string, op Op, value any) Predicate {
	conds := make([]Condition, 0, len(p.Conditions)+1)
	conds = append(conds, p.Conditions...)
	conds = append(conds, Condition{Field: field, Op: op, Value: value})
	return Predicate{Conditions: conds}
}

// Repository is the generic data access contract for an entity type.
// Reads hit storage directly. Add, Update and Delete only stage changes;
// nothing reaches storage until the owning UnitOfWork commits.
type Repository[T any] interface {
	// GetByID loads the entity by primary key, or nil when it does not exist.
	GetByID(ctx context.Context, id any) (*T, error)
	// FindOne returns the first match, or nil when nothing matches.
	FindOne(ctx context.Context, p Predicate) (*T, error)
	FindAll(ctx context.Context, p Predicate) ([]*T, error)
	GetAll(ctx context.Context) ([]*T, error)
	Any(ctx context.Context, p Predicate) (bool, error)
	Add(entity *T)
	Update(entity *T)
	Delete(entity *T)
}

// CandidateRepository adds candidate lookups to the generic contract.
type CandidateRepository interface {
	Repository[Candidate]
	// GetByEmail matches case-insensitively and returns nil when no candidate has the email.
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
}

// UnitOfWork batches staged changes into one atomic commit.
// Instances are per logical operation and must not be shared across requests.
type UnitOfWork interface {
	Candidates() CandidateRepository
	// Commit flushes staged changes atomically and returns the affected row count.
	Commit(ctx context.Context) (int, error)
	// Rollback discards staged changes. It never reports failure and is not a
	// recovery mechanism for storage state.
	Rollback()
}

// UnitOfWorkFactory opens a fresh unit of work.
type UnitOfWorkFactory func() UnitOfWork
