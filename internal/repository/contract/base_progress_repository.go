package contract

import (
	"context"

	"github.com/google/uuid"

	"homerun-be/internal/entity"
	"homerun-be/internal/repository/specification"
)

type BaseProgressRepository interface {
	// Upsert inserts or updates on the (conversation_id, base_stage) key.
	Upsert(ctx context.Context, progress *entity.BaseProgress) error
	DeleteAllByConversationIdUnscoped(ctx context.Context, conversationId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BaseProgress, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BaseProgress, error)
}
