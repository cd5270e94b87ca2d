package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gitlab.com/ingwane/api/enquiry-service/internal/apperrors"
	"gitlab.com/ingwane/api/enquiry-service/internal/model"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
)

// PostgresRepo implements the enquiry repository on PostgreSQL via GORM.
type PostgresRepo struct {
	db *gorm.DB
}

// NewPostgresRepo connects to PostgreSQL and prepares the enquiries table.
func NewPostgresRepo(dsn string, autoMigrate bool) (*PostgresRepo, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	repo := &PostgresRepo{db: db}

	if autoMigrate {
		logger.Log.Info("Running auto-migration for enquiries table")
		if err := db.AutoMigrate(&model.Enquiry{}); err != nil {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
			return nil, fmt.Errorf("auto-migration failed: %w", err)
		}

		// AutoMigrate covers the tag-declared indexes; these keep the names
		// stable for deployments migrated from earlier schema versions.
		indexes := map[string]string{
			"idx_enquiries_status":     "CREATE INDEX IF NOT EXISTS idx_enquiries_status ON enquiries USING btree (status);",
			"idx_enquiries_created_at": "CREATE INDEX IF NOT EXISTS idx_enquiries_created_at ON enquiries USING btree (created_at);",
		}
		for indexName, indexSQL := range indexes {
			if err := db.Exec(indexSQL).Error; err != nil {
				logger.Log.Warn("Failed to create index", zap.String("indexName", indexName), zap.Error(err))
			}
		}
	} else {
		logger.Log.Info("Auto-migration disabled")
	}

	return repo, nil
}

// NewPostgresRepoWithDB wraps an existing GORM handle. Used by tests.
func NewPostgresRepoWithDB(db *gorm.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// Close closes the database connection
func (r *PostgresRepo) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to get underlying SQL DB for closing", zap.Error(err))
		return nil
	}

	if closeErr := sqlDB.Close(); closeErr != nil {
		logger.FromContext(ctx).Error("Failed to close database connection", zap.Error(closeErr))
		return fmt.Errorf("failed to close SQL DB: %w", closeErr)
	}

	logger.FromContext(ctx).Info("Database connection closed successfully")
	return nil
}

// checkConstraintViolation inspects database errors and maps them to standard apperrors.
func checkConstraintViolation(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", apperrors.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// Class 23 — Integrity Constraint Violation
		case "23505": // unique_violation
			return fmt.Errorf("%w: constraint %s: %w", apperrors.ErrDuplicate, pgErr.ConstraintName, err)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: constraint %s: %w", apperrors.ErrBadRequest, pgErr.ConstraintName, err)
		case "23502": // not_null_violation
			return fmt.Errorf("%w: null value in column %s: %w", apperrors.ErrBadRequest, pgErr.ColumnName, err)
		case "23514": // check_violation
			return fmt.Errorf("%w: constraint %s: %w", apperrors.ErrBadRequest, pgErr.ConstraintName, err)

		// Class 22 — Data Exception
		case "22001": // string_data_right_truncation
			return fmt.Errorf("%w: value too long for column %s: %w", apperrors.ErrBadRequest, pgErr.ColumnName, err)
		case "22P02": // invalid_text_representation
			return fmt.Errorf("%w: invalid input syntax for type %s: %w", apperrors.ErrBadRequest, pgErr.DataTypeName, err)

		default:
			if strings.HasPrefix(pgErr.Code, "53") { // Class 53 — Insufficient Resources
				return fmt.Errorf("%w: insufficient resources (%s): %w", apperrors.ErrDatabase, pgErr.Code, err)
			}
			if strings.HasPrefix(pgErr.Code, "08") { // Class 08 — Connection Exception
				return fmt.Errorf("%w: connection error (%s): %w", apperrors.ErrDatabase, pgErr.Code, err)
			}
			return fmt.Errorf("%w: unhandled pgcode %s: %w", apperrors.ErrDatabase, pgErr.Code, err)
		}
	}

	return fmt.Errorf("%w: %w", apperrors.ErrDatabase, err)
}
