package service

import (
	"context"

	"go.uber.org/zap"

	"kiosk-data/internal/domain"
	"kiosk-data/internal/repository"
)

// RegistrationResult aggregate outcome of one submission.
type RegistrationResult struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	VisitorID string `json:"visitorId,omitempty"`
}

// RegistrationService persists kiosk submissions.
type RegistrationService interface {
	// Submit writes the visitor, one link row per selected program, and the
	// metadata row, in that order. The caller must have validated the form:
	// Submit assumes at least one selected program.
	Submit(ctx context.Context, form domain.VisitorFormData, md *domain.VisitorMetadata) RegistrationResult
}

type registrationService struct {
	visitors repository.VisitorsRepository
	logger   *zap.Logger
}

func NewRegistrationService(visitors repository.VisitorsRepository, logger *zap.Logger) RegistrationService {
	return &registrationService{
		visitors: visitors,
		logger:   logger,
	}
}

// Submit runs the three writes sequentially inside the repository's
// transactional unit. The first failing step aborts the remaining ones and
// its message becomes the aggregate error; the rollback means no orphaned
// visitor or link rows survive a partial failure.
func (s *registrationService) Submit(ctx context.Context, form domain.VisitorFormData, md *domain.VisitorMetadata) RegistrationResult {
	var visitorID string

	err := s.visitors.RegisterVisitor(ctx, func(w repository.RegistrationWriter) error {
		id, err := w.InsertVisitor(ctx, form.Name, form.WorkPhone)
		if err != nil {
			return err
		}
		visitorID = id

		if err := w.InsertVisitorPrograms(ctx, visitorID, form.SelectedPrograms); err != nil {
			return err
		}

		return w.InsertVisitorMetadata(ctx, visitorID, md)
	})
	if err != nil {
		s.logger.Error("Visitor registration failed",
			zap.Error(err),
			zap.Int("program_count", len(form.SelectedPrograms)),
		)
		return RegistrationResult{Success: false, Error: err.Error()}
	}

	s.logger.Info("Visitor registered",
		zap.String("visitor_id", visitorID),
		zap.Int("program_count", len(form.SelectedPrograms)),
	)
	return RegistrationResult{Success: true, VisitorID: visitorID}
}
