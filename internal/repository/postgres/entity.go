package postgres

import (
	"context"
	"strings"

	"candidatehub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// DB is a connection source able to open transactions. *pgxpool.Pool satisfies it.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Scanner is satisfied by pgx.Row and pgx.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// EntityType maps an entity to its table. A pointer to an EntityType is the
// token a UnitOfWork uses to cache one repository per entity type.
type EntityType[T any] struct {
	Name    string
	Table   string
	Key     string   // primary key column, must be Columns[0]
	Columns []string // select/insert order
	OrderBy string   // default ordering for reads

	// Fields maps predicate field identifiers to columns. Predicates naming
	// any other field are rejected.
	Fields map[string]string

	KeyOf  func(e *T) any
	Scan   func(s Scanner) (*T, error)
	Values func(e *T) []any // same order as Columns

	// NewRepository overrides the generic repository constructor.
	NewRepository func(u *UnitOfWork, et *EntityType[T]) domain.Repository[T]
}

func (et *EntityType[T]) selectList() string {
	return strings.Join(et.Columns, ", ")
}
