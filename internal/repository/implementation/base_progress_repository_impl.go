package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homerun-be/internal/entity"
	"homerun-be/internal/mapper"
	"homerun-be/internal/model"
	"homerun-be/internal/repository/contract"
	"homerun-be/internal/repository/specification"
)

type BaseProgressRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JourneyMapper
}

func NewBaseProgressRepository(db *gorm.DB) contract.BaseProgressRepository {
	return &BaseProgressRepositoryImpl{
		db:     db,
		mapper: mapper.NewJourneyMapper(),
	}
}

func (r *BaseProgressRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BaseProgressRepositoryImpl) Upsert(ctx context.Context, progress *entity.BaseProgress) error {
	m := r.mapper.BaseProgressToModel(progress)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "conversation_id"}, {Name: "base_stage"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed_at", "why_sequence_complete", "confirmation_received", "action_assigned", "responses",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*progress = *r.mapper.BaseProgressToEntity(m)
	return nil
}

func (r *BaseProgressRepositoryImpl) DeleteAllByConversationIdUnscoped(ctx context.Context, conversationId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Where("conversation_id = ?", conversationId).Delete(&model.BaseProgress{}).Error
}

func (r *BaseProgressRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BaseProgress, error) {
	var m model.BaseProgress
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.BaseProgressToEntity(&m), nil
}

func (r *BaseProgressRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BaseProgress, error) {
	var models []*model.BaseProgress
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.BaseProgress, len(models))
	for i, m := range models {
		entities[i] = r.mapper.BaseProgressToEntity(m)
	}
	return entities, nil
}
