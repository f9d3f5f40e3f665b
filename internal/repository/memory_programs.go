package repository

import (
	"context"

	"kiosk-data/internal/domain"
)

// MemoryProgramsRepository fixed catalog used when no DB is configured, so
// the kiosk UI stays demoable without infrastructure. The list is already in
// catalog order (category ascending, then program_name ascending).
type MemoryProgramsRepository struct {
	programs []domain.Program
}

func NewMemoryProgramsRepository() *MemoryProgramsRepository {
	return &MemoryProgramsRepository{
		programs: []domain.Program{
			{ProgramID: 2, ProgramName: "Business Administration", Category: "Business", IsActive: true},
			{ProgramID: 6, ProgramName: "Marketing", Category: "Business", IsActive: true},
			{ProgramID: 8, ProgramName: "Architecture", Category: "Design", IsActive: true},
			{ProgramID: 5, ProgramName: "Civil Engineering", Category: "Engineering", IsActive: true},
			{ProgramID: 1, ProgramName: "Computer Science", Category: "Engineering", IsActive: true},
			{ProgramID: 3, ProgramName: "Mechanical Engineering", Category: "Engineering", IsActive: true},
			{ProgramID: 7, ProgramName: "Artificial Intelligence", Category: "Technology", IsActive: true},
			{ProgramID: 4, ProgramName: "Data Science", Category: "Technology", IsActive: true},
		},
	}
}

var _ ProgramsRepository = (*MemoryProgramsRepository)(nil)

func (r *MemoryProgramsRepository) ListActivePrograms(_ context.Context) ([]domain.Program, error) {
	out := make([]domain.Program, len(r.programs))
	copy(out, r.programs)
	return out, nil
}
