package repository

import (
	"context"
	"encoding/json"

	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"

	"github.com/google/uuid"
)

// ChangeFeedRepository writes outbox rows for the external realtime
// publisher. Emission shares the mutation's transaction; delivery and
// ordering to subscribers are the collaborator's concern.
type ChangeFeedRepository struct{}

func NewChangeFeedRepository() *ChangeFeedRepository {
	return &ChangeFeedRepository{}
}

func (r *ChangeFeedRepository) Emit(ctx context.Context, tx db.DBTX, entity string, entityID uuid.UUID, op string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal change event payload", err)
	}

	const q = `
		INSERT INTO change_events (entity, entity_id, op, payload)
		VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, q, entity, entityID, op, body); err != nil {
		return infra.WrapRepoErr("failed to emit change event", err)
	}
	return nil
}
