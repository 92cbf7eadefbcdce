package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTombstoneRepository struct {
	BaseRepository
}

func newPgxTombstoneRepository(pool *pgxpool.Pool) portsrepo.TombstoneWriter {
	return &PgxTombstoneRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TombstoneWriter = (*PgxTombstoneRepository)(nil)

func (r *PgxTombstoneRepository) InsertTombstone(ctx context.Context, tx pgx.Tx, t domain.Tombstone) error {
	query := `
		INSERT INTO recycled_objects (recycled_object_id, entity_id, recyclable_type, recyclable_id, user_id, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db(tx).Exec(ctx, query,
		t.TombstoneID,
		t.EntityID,
		t.RecyclableType,
		t.RecyclableID,
		t.UserID,
		t.DeletedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record deletion of "+string(t.RecyclableType)+" "+t.RecyclableID, err)
	}
	return nil
}
