package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"valuescore/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS model_artifacts (
		name          TEXT PRIMARY KEY,
		kind          TEXT NOT NULL,
		feature_names JSONB NOT NULL,
		scaler_mean   DOUBLE PRECISION[],
		scaler_scale  DOUBLE PRECISION[],
		coef          DOUBLE PRECISION[] NOT NULL,
		intercept     DOUBLE PRECISION NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Migrate creates the model_artifacts table
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// GetModelArtifact retrieves a stored artifact by name; it returns nil, nil when no row exists
func (r *PostgresRepository) GetModelArtifact(ctx context.Context, name string) (*model.ModelArtifact, error) {
	var row model.ModelArtifactRow
	query := `
		SELECT
			name, kind, feature_names, scaler_mean, scaler_scale,
			coef, intercept, created_at, updated_at
		FROM model_artifacts
		WHERE name = $1
	`
	err := r.db.GetContext(ctx, &row, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get model artifact: %w", err)
	}
	return row.Artifact(), nil
}

// SaveModelArtifact inserts or replaces the artifact stored under a.Name
func (r *PostgresRepository) SaveModelArtifact(ctx context.Context, a *model.ModelArtifact) error {
	row := model.NewModelArtifactRow(a)
	query := `
		INSERT INTO model_artifacts (name, kind, feature_names, scaler_mean, scaler_scale, coef, intercept)
		VALUES (:name, :kind, :feature_names, :scaler_mean, :scaler_scale, :coef, :intercept)
		ON CONFLICT (name) DO UPDATE SET
			kind = EXCLUDED.kind,
			feature_names = EXCLUDED.feature_names,
			scaler_mean = EXCLUDED.scaler_mean,
			scaler_scale = EXCLUDED.scaler_scale,
			coef = EXCLUDED.coef,
			intercept = EXCLUDED.intercept,
			updated_at = NOW()
	`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save model artifact: %w", err)
	}
	return nil
}

// ArtifactSource returns a reader for the artifact stored under name
func (r *PostgresRepository) ArtifactSource(name string) *PostgresArtifactSource {
	return &PostgresArtifactSource{repo: r, name: name}
}

// PostgresArtifactSource reads one named artifact from model_artifacts
type PostgresArtifactSource struct {
	repo *PostgresRepository
	name string
}

// FetchArtifact loads the named artifact
func (s *PostgresArtifactSource) FetchArtifact(ctx context.Context) (*model.ModelArtifact, error) {
	a, err := s.repo.GetModelArtifact(ctx, s.name)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("model artifact %q not found", s.name)
	}
	return a, nil
}

// Describe names the source for logs and errors
func (s *PostgresArtifactSource) Describe() string {
	return fmt.Sprintf("postgres:model_artifacts/%s", s.name)
}
