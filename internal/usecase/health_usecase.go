package usecase

import (
	"context"
	"sort"
	"time"

	"candidatehub-backend/internal/domain"
)

type healthUsecase struct {
	checks  map[string]domain.HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks map[string]domain.HealthCheck) domain.HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"status": "ok"}
	ok := true

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, u.timeout)
		err := u.checks[name](checkCtx)
		cancel()
		if err != nil {
			status[name] = "down: " + err.Error()
			ok = false
			continue
		}
		status[name] = "up"
	}

	if !ok {
		status["status"] = "degraded"
	}
	return status, ok
}
