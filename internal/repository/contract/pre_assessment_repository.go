package contract

import (
	"context"

	"homerun-be/internal/entity"
	"homerun-be/internal/repository/specification"
)

type PreAssessmentRepository interface {
	Create(ctx context.Context, assessment *entity.PreAssessment) error
	Update(ctx context.Context, assessment *entity.PreAssessment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreAssessment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PreAssessment, error)
}
