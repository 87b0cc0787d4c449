package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/SscSPs/financeflow/internal/apperrors"
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
)

// BlobRepository stores blobs as JSONB rows keyed by name in the journal_blobs table.
type BlobRepository struct {
	db *sqlx.DB
}

// NewBlobRepository creates a new repository for journal blobs.
func NewBlobRepository(db *sqlx.DB) *BlobRepository {
	return &BlobRepository{db: db}
}

var _ portsrepo.BlobStore = (*BlobRepository)(nil)

// Load fetches the payload stored under key.
func (r *BlobRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT payload FROM journal_blobs WHERE blob_key = $1;`

	var payload []byte
	err := r.db.GetContext(ctx, &payload, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blob %q: %w", key, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load blob %q: %w", key, err)
	}
	return payload, nil
}

// Save upserts the payload in a single statement.
func (r *BlobRepository) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO journal_blobs (blob_key, payload, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (blob_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(data)); err != nil {
		return fmt.Errorf("failed to save blob %q: %w", key, err)
	}
	return nil
}

// Delete removes the row for key if it exists.
func (r *BlobRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM journal_blobs WHERE blob_key = $1;`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}
