package postgres

import (
	"context"
	"fmt"
	"strings"

	"candidatehub-backend/internal/domain"
)

// genericRepository implements domain.Repository for any mapped entity.
// Loaded entities are tracked by the owning unit of work; loading a row whose
// key is already tracked returns the tracked instance.
type genericRepository[T any] struct {
	uow   *UnitOfWork
	et    *EntityType[T]
	byKey map[any]*T // guarded by uow.mu
}

func newGenericRepository[T any](u *UnitOfWork, et *EntityType[T]) domain.Repository[T] {
	return newGenericRepo(u, et)
}

func newGenericRepo[T any](u *UnitOfWork, et *EntityType[T]) *genericRepository[T] {
	return &genericRepository[T]{
		uow:   u,
		et:    et,
		byKey: make(map[any]*T),
	}
}

func (r *genericRepository[T]) GetByID(ctx context.Context, id any) (*T, error) {
	found, err := r.selectRows(ctx, " WHERE "+r.et.Key+" = $1", []any{id}, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *genericRepository[T]) FindOne(ctx context.Context, p domain.Predicate) (*T, error) {
	found, err := r.query(ctx, p, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *genericRepository[T]) FindAll(ctx context.Context, p domain.Predicate) ([]*T, error) {
	return r.query(ctx, p, 0)
}

func (r *genericRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.query(ctx, domain.Predicate{}, 0)
}

func (r *genericRepository[T]) Any(ctx context.Context, p domain.Predicate) (bool, error) {
	where, args, err := buildWhere(p, r.et.Fields, 0)
	if err != nil {
		return false, err
	}

	query := "SELECT EXISTS (SELECT 1 FROM " + r.et.Table + where + ")"
	rows, err := r.uow.querier().Query(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: exists: %w", r.et.Name, err)
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, fmt.Errorf("%s: exists scan: %w", r.et.Name, err)
		}
	}
	return exists, rows.Err()
}

func (r *genericRepository[T]) Add(entity *T) {
	u := r.uow
	u.mu.Lock()
	defer u.mu.Unlock()

	if e, ok := u.index[entity]; ok {
		if e.state == stateDeleted {
			e.state = stateModified
		}
		return
	}
	u.trackLocked(r.newEntry(entity, stateAdded))
}

func (r *genericRepository[T]) Update(entity *T) {
	u := r.uow
	u.mu.Lock()
	defer u.mu.Unlock()

	if e, ok := u.index[entity]; ok {
		if e.state != stateAdded {
			e.state = stateModified
		}
		return
	}
	u.trackLocked(r.newEntry(entity, stateModified))
}

func (r *genericRepository[T]) Delete(entity *T) {
	u := r.uow
	u.mu.Lock()
	defer u.mu.Unlock()

	if e, ok := u.index[entity]; ok {
		if e.state == stateAdded {
			u.untrackLocked(e)
			return
		}
		e.state = stateDeleted
		return
	}
	u.trackLocked(r.newEntry(entity, stateDeleted))
}

func (r *genericRepository[T]) query(ctx context.Context, p domain.Predicate, limit int) ([]*T, error) {
	where, args, err := buildWhere(p, r.et.Fields, 0)
	if err != nil {
		return nil, err
	}
	return r.selectRows(ctx, where, args, limit)
}

// selectRows runs SELECT with a pre-rendered WHERE clause ("" for all rows).
func (r *genericRepository[T]) selectRows(ctx context.Context, where string, args []any, limit int) ([]*T, error) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(r.et.selectList())
	sb.WriteString(" FROM ")
	sb.WriteString(r.et.Table)
	sb.WriteString(where)
	if r.et.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(r.et.OrderBy)
	}
	if limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", limit)
	}

	rows, err := r.uow.querier().Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", r.et.Name, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		entity, err := r.et.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", r.et.Name, err)
		}
		out = append(out, r.attach(entity))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", r.et.Name, err)
	}
	return out, nil
}

// attach starts tracking a freshly loaded entity, or returns the instance
// already tracked under the same key.
func (r *genericRepository[T]) attach(entity *T) *T {
	u := r.uow
	u.mu.Lock()
	defer u.mu.Unlock()

	if tracked, ok := r.byKey[r.et.KeyOf(entity)]; ok {
		return tracked
	}
	u.trackLocked(r.newEntry(entity, stateUnchanged))
	return entity
}

// newEntry must be called with uow.mu held.
func (r *genericRepository[T]) newEntry(entity *T, state entityState) *trackedEntry {
	key := r.et.KeyOf(entity)
	snapshot := *entity
	r.byKey[key] = entity

	return &trackedEntry{
		entity: entity,
		state:  state,
		flush: func(ctx context.Context, q Querier, s entityState) (int64, error) {
			return r.flush(ctx, q, entity, s)
		},
		restore: func() { *entity = snapshot },
		accept:  func() { snapshot = *entity },
		detach: func() {
			if cur, ok := r.byKey[key]; ok && cur == entity {
				delete(r.byKey, key)
			}
		},
	}
}

func (r *genericRepository[T]) flush(ctx context.Context, q Querier, entity *T, state entityState) (int64, error) {
	et := r.et

	switch state {
	case stateAdded:
		values := et.Values(entity)
		placeholders := make([]string, len(values))
		for i := range values {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		query := "INSERT INTO " + et.Table + " (" + et.selectList() + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
		tag, err := q.Exec(ctx, query, values...)
		if err != nil {
			return 0, fmt.Errorf("%s: insert: %w", et.Name, err)
		}
		return tag.RowsAffected(), nil

	case stateModified:
		values := et.Values(entity)
		sets := make([]string, 0, len(et.Columns)-1)
		for i, col := range et.Columns[1:] {
			sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
		}
		query := "UPDATE " + et.Table + " SET " + strings.Join(sets, ", ") + " WHERE " + et.Key + " = $1"
		tag, err := q.Exec(ctx, query, values...)
		if err != nil {
			return 0, fmt.Errorf("%s: update: %w", et.Name, err)
		}
		if tag.RowsAffected() == 0 {
			return 0, fmt.Errorf("%s: update %v: %w", et.Name, et.KeyOf(entity), ErrEntityNotFound)
		}
		return tag.RowsAffected(), nil

	case stateDeleted:
		query := "DELETE FROM " + et.Table + " WHERE " + et.Key + " = $1"
		tag, err := q.Exec(ctx, query, et.KeyOf(entity))
		if err != nil {
			return 0, fmt.Errorf("%s: delete: %w", et.Name, err)
		}
		if tag.RowsAffected() == 0 {
			return 0, fmt.Errorf("%s: delete %v: %w", et.Name, et.KeyOf(entity), ErrEntityNotFound)
		}
		return tag.RowsAffected(), nil
	}
	return 0, nil
}
