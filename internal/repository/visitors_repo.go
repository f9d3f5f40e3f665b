package repository

import (
	"context"
	"time"

	"kiosk-data/internal/domain"
)

// RegistrationWriter the three ordered writes of one kiosk submission.
// Each call must complete before the next begins; the visitor id returned by
// InsertVisitor keys the link and metadata rows.
type RegistrationWriter interface {
	InsertVisitor(ctx context.Context, name, workPhone string) (string, error)

	// InsertVisitorPrograms writes one link row per entry in programIDs.
	// Duplicate ids produce duplicate rows.
	InsertVisitorPrograms(ctx context.Context, visitorID string, programIDs []int) error

	InsertVisitorMetadata(ctx context.Context, visitorID string, md *domain.VisitorMetadata) error
}

// VisitorsRepository persistence for visitor registrations.
type VisitorsRepository interface {
	// RegisterVisitor runs fn against a writer whose inserts form a single
	// transactional unit. If fn returns an error nothing is persisted, so a
	// failed step never leaves an orphaned visitor behind.
	RegisterVisitor(ctx context.Context, fn func(w RegistrationWriter) error) error

	// GetVisitorDetails returns a visitor joined with program names and
	// metadata. A missing metadata row is not an error.
	GetVisitorDetails(ctx context.Context, visitorID string) (*domain.VisitorDetails, error)

	// MarkConverted sets is_converted and stamps converted_at.
	MarkConverted(ctx context.Context, visitorID string) error

	// ListRegistrations returns all registrations for export, oldest first.
	ListRegistrations(ctx context.Context) ([]RegistrationExportRow, error)
}

// RegistrationExportRow flattened registration used by the xlsx export.
type RegistrationExportRow struct {
	VisitorID   string
	Name        string
	WorkPhone   string
	Programs    string // comma-joined program names
	Country     string
	City        string
	Browser     string
	Device      string
	IsConverted bool
	CreatedAt   time.Time
}
