package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"candidatehub-backend/config"
	"candidatehub-backend/internal/repository/postgres"
	"candidatehub-backend/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// seedRow is the sqlx named-parameter view of a candidate row.
type seedRow struct {
	ID          string    `db:"id"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Email       string    `db:"email"`
	PhoneNumber string    `db:"phone_number"`
	Comments    *string   `db:"comments"`
	CreatedAt   time.Time `db:"created_at"`
}

const insertSeedQuery = `
INSERT INTO candidates (id, first_name, last_name, email, phone_number, comments, created_at)
VALUES (:id, :first_name, :last_name, :email, :phone_number, :comments, :created_at)
ON CONFLICT ((lower(email))) DO NOTHING`

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	seed := flag.Bool("seed", cfg.SeedData, "insert sample candidates when the table is empty")
	dsn := flag.String("dsn", cfg.DBUrl, "postgres connection string")
	flag.Parse()

	zl, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", *dsn)
	if err != nil {
		zl.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	if err := run(ctx, db, *seed, zl); err != nil {
		fields := []zap.Field{zap.Error(err)}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			fields = append(fields, zap.String("pg_code", string(pqErr.Code)), zap.String("detail", pqErr.Detail))
		}
		zl.Error("Migration failed", fields...)
		os.Exit(1)
	}
}

func run(ctx context.Context, db *sqlx.DB, seed bool, log *zap.Logger) error {
	if _, err := db.ExecContext(ctx, postgres.Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info("Schema applied")

	if !seed {
		return nil
	}

	n, err := seedCandidates(ctx, db, time.Now())
	if err != nil {
		return err
	}
	log.Info("Seed complete", zap.Int("inserted", n))
	return nil
}

// seedCandidates inserts the sample rows only into an empty table.
func seedCandidates(ctx context.Context, db *sqlx.DB, now time.Time) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT count(*) FROM candidates"); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, c := range postgres.SeedCandidates(now) {
		res, err := tx.NamedExecContext(ctx, insertSeedQuery, seedRow{
			ID:          c.ID.String(),
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			Email:       c.Email,
			PhoneNumber: c.PhoneNumber,
			Comments:    c.Comments,
			CreatedAt:   c.CreatedAt,
		})
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", c.Email, err)
		}
		if rows, _ := res.RowsAffected(); rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}
