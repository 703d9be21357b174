package usecase

import (
	"context"
	"net/http"
	"time"

	"candidatehub-backend/internal/domain"
	"candidatehub-backend/pkg/apperror"
	"candidatehub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	DefaultCandidateCacheTTL     = 5 * time.Minute
	DefaultCandidateListCacheTTL = 10 * time.Minute
)

// CacheTTLs sets entry lifetimes. Zero values fall back to the defaults.
type CacheTTLs struct {
	Candidate     time.Duration
	CandidateList time.Duration
}

// candidateLookup is what gets cached under candidate:<email>, so a miss in
// storage is remembered as well as a hit.
type candidateLookup struct {
	Found     bool                      `json:"found"`
	Candidate *domain.CandidateResponse `json:"candidate,omitempty"`
}

type candidateUsecase struct {
	newUoW   domain.UnitOfWorkFactory
	cache    domain.Cache
	validate *validator.Validate
	log      *zap.Logger
	ttl      CacheTTLs
	now      func() time.Time
}

func NewCandidateUsecase(newUoW domain.UnitOfWorkFactory, cache domain.Cache, validate *validator.Validate, log *zap.Logger, ttl CacheTTLs) domain.CandidateUsecase {
	if ttl.Candidate <= 0 {
		ttl.Candidate = DefaultCandidateCacheTTL
	}
	if ttl.CandidateList <= 0 {
		ttl.CandidateList = DefaultCandidateListCacheTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &candidateUsecase{
		newUoW:   newUoW,
		cache:    cache,
		validate: validate,
		log:      log,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *candidateUsecase) CreateOrUpdate(ctx context.Context, in *domain.CandidateInput) (*domain.CandidateResponse, error) {
	if in == nil {
		return nil, apperror.BadRequest("Candidate body is required")
	}

	input := *in
	input.Email = domain.NormalizeEmail(in.Email)

	if fields := validation.Struct(u.validate, &input); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	uow := u.newUoW()
	repo := uow.Candidates()

	existing, err := repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, saveFailure(err)
	}

	now := u.now()
	var saved *domain.Candidate
	if existing == nil {
		saved = domain.NewCandidate(&input)
		saved.Email = input.Email
		saved.CreatedAt = now
		repo.Add(saved)
	} else {
		existing.ApplyUpdate(&input, now)
		repo.Update(existing)
		saved = existing
	}

	if _, err := uow.Commit(ctx); err != nil {
		uow.Rollback()
		u.log.Error("candidate commit failed",
			zap.String("email", input.Email),
			zap.Bool("created", existing == nil),
			zap.Error(err),
		)
		return nil, saveFailure(err)
	}

	u.invalidate(ctx, input.Email)

	u.log.Info("candidate saved",
		zap.String("id", saved.ID.String()),
		zap.Bool("created", existing == nil),
	)
	resp := saved.ToResponse()
	return &resp, nil
}

func (u *candidateUsecase) GetByEmail(ctx context.Context, email string) (*domain.CandidateResponse, bool, error) {
	normalized := domain.NormalizeEmail(email)
	key := domain.CandidateCacheKey(normalized)

	var cached candidateLookup
	if u.cacheGet(ctx, key, &cached) {
		return cached.Candidate, cached.Found && cached.Candidate != nil, nil
	}

	uow := u.newUoW()
	candidate, err := uow.Candidates().GetByEmail(ctx, normalized)
	if err != nil {
		return nil, false, apperror.Domain(http.StatusInternalServerError, "Failed to fetch candidate information", err)
	}

	lookup := candidateLookup{Found: candidate != nil}
	if candidate != nil {
		resp := candidate.ToResponse()
		lookup.Candidate = &resp
	}
	u.cacheSet(ctx, key, lookup, u.ttl.Candidate)

	return lookup.Candidate, lookup.Found, nil
}

func (u *candidateUsecase) GetAll(ctx context.Context) ([]domain.CandidateResponse, error) {
	var cached []domain.CandidateResponse
	if u.cacheGet(ctx, domain.AllCandidatesCacheKey, &cached) {
		if cached == nil {
			cached = []domain.CandidateResponse{}
		}
		return cached, nil
	}

	uow := u.newUoW()
	candidates, err := uow.Candidates().GetAll(ctx)
	if err != nil {
		return nil, apperror.Domain(http.StatusInternalServerError, "Failed to retrieve candidate list", err)
	}

	out := make([]domain.CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ToResponse())
	}
	u.cacheSet(ctx, domain.AllCandidatesCacheKey, out, u.ttl.CandidateList)

	return out, nil
}

func saveFailure(err error) error {
	return apperror.Domain(http.StatusBadRequest, "Error occurred while processing the candidate record", err)
}

// Cache is best-effort: failures are logged and read as a miss.

func (u *candidateUsecase) cacheGet(ctx context.Context, key string, dest any) bool {
	hit, err := u.cache.Get(ctx, key, dest)
	if err != nil {
		u.log.Warn("cache get failed, treating as miss", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (u *candidateUsecase) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := u.cache.Set(ctx, key, value, ttl); err != nil {
		u.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (u *candidateUsecase) invalidate(ctx context.Context, normalizedEmail string) {
	for _, key := range []string{domain.CandidateCacheKey(normalizedEmail), domain.AllCandidatesCacheKey} {
		if err := u.cache.Remove(ctx, key); err != nil {
			u.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}
