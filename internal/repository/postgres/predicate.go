package postgres

import (
	"fmt"
	"strings"

	"candidatehub-backend/internal/domain"
)

// buildWhere renders p as a WHERE clause with numbered placeholders starting
// after argOffset. An empty predicate renders as "".
func buildWhere(p domain.Predicate, fields map[string]string, argOffset int) (string, []any, error) {
	if len(p.Conditions) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(p.Conditions))
	args := make([]any, 0, len(p.Conditions))

	for _, cond := range p.Conditions {
		col, ok := fields[cond.Field]
		if !ok {
			return "", nil, fmt.Errorf("predicate: unknown field %q", cond.Field)
		}

		if cond.Value == nil {
			switch cond.Op {
			case domain.OpEq:
				clauses = append(clauses, col+" IS NULL")
			case domain.OpNotEq:
				clauses = append(clauses, col+" IS NOT NULL")
			default:
				return "", nil, fmt.Errorf("predicate: operator %q does not accept nil", cond.Op)
			}
			continue
		}

		args = append(args, cond.Value)
		ph := fmt.Sprintf("$%d", argOffset+len(args))

		switch cond.Op {
		case domain.OpEq:
			clauses = append(clauses, col+" = "+ph)
		case domain.OpNotEq:
			clauses = append(clauses, col+" <> "+ph)
		case domain.OpEqFold:
			clauses = append(clauses, "lower("+col+") = lower("+ph+")")
		default:
			return "", nil, fmt.Errorf("predicate: unsupported operator %q", cond.Op)
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}
