package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"homerun-be/internal/entity"
	"homerun-be/internal/mapper"
	"homerun-be/internal/model"
	"homerun-be/internal/repository/contract"
	"homerun-be/internal/repository/specification"
)

type PreAssessmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JourneyMapper
}

func NewPreAssessmentRepository(db *gorm.DB) contract.PreAssessmentRepository {
	return &PreAssessmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewJourneyMapper(),
	}
}

func (r *PreAssessmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PreAssessmentRepositoryImpl) Create(ctx context.Context, assessment *entity.PreAssessment) error {
	m := r.mapper.PreAssessmentToModel(assessment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*assessment = *r.mapper.PreAssessmentToEntity(m)
	return nil
}

func (r *PreAssessmentRepositoryImpl) Update(ctx context.Context, assessment *entity.PreAssessment) error {
	m := r.mapper.PreAssessmentToModel(assessment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*assessment = *r.mapper.PreAssessmentToEntity(m)
	return nil
}

func (r *PreAssessmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreAssessment, error) {
	var m model.PreAssessment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PreAssessmentToEntity(&m), nil
}

func (r *PreAssessmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PreAssessment, error) {
	var models []*model.PreAssessment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PreAssessment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PreAssessmentToEntity(m)
	}
	return entities, nil
}
