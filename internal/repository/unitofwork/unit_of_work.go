package unitofwork

import (
	"context"

	"homerun-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	BaseProgressRepository() contract.BaseProgressRepository
	PreAssessmentRepository() contract.PreAssessmentRepository
}
