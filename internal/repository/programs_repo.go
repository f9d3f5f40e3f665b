package repository

import (
	"context"

	"kiosk-data/internal/domain"
)

// ProgramsRepository read access to the program catalog.
// Strongly typed domain models, no map[string]any: the repository layer only
// does data access, grouping and caching live in the service layer.
type ProgramsRepository interface {
	// ListActivePrograms returns programs with is_active = true, ordered by
	// category ascending then program_name ascending.
	ListActivePrograms(ctx context.Context) ([]domain.Program, error)
}
