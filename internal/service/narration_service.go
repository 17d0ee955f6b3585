package service

import (
	"context"

	"homerun-be/internal/dto"
	"homerun-be/internal/pkg/logger"
	"homerun-be/pkg/tts"
)

type INarrationService interface {
	Narrate(ctx context.Context, req *dto.NarrationRequest) (*dto.NarrationResponse, error)
}

type narrationService struct {
	synthesizer tts.Synthesizer
	logger      logger.ILogger
}

func NewNarrationService(synthesizer tts.Synthesizer, logger logger.ILogger) INarrationService {
	return &narrationService{
		synthesizer: synthesizer,
		logger:      logger,
	}
}

func (s *narrationService) Narrate(ctx context.Context, req *dto.NarrationRequest) (*dto.NarrationResponse, error) {
	audio, err := s.synthesizer.Synthesize(ctx, req.Text)
	if err != nil {
		s.logger.Error("narration_service", "speech synthesis failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return &dto.NarrationResponse{AudioDataUrl: audio}, nil
}
