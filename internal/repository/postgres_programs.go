package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kiosk-data/internal/domain"
)

// PostgresProgramsRepository programs catalog backed by the programs table.
type PostgresProgramsRepository struct {
	db *sql.DB
}

func NewPostgresProgramsRepository(db *sql.DB) *PostgresProgramsRepository {
	return &PostgresProgramsRepository{db: db}
}

var _ ProgramsRepository = (*PostgresProgramsRepository)(nil)

// ListActivePrograms returns active programs ordered by category, then name.
func (r *PostgresProgramsRepository) ListActivePrograms(ctx context.Context) ([]domain.Program, error) {
	query := `
		SELECT
			id,
			program_name,
			COALESCE(category, 'Other') as category,
			is_active
		FROM programs
		WHERE is_active = true
		ORDER BY category ASC, program_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var programs []domain.Program
	for rows.Next() {
		var p domain.Program
		if err := rows.Scan(&p.ProgramID, &p.ProgramName, &p.Category, &p.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate programs: %w", err)
	}

	return programs, nil
}
