package domain

// Program academic program a visitor can express interest in (programs table)
// ProgramGroup programs bucketed under one category for the selector UI.
type ProgramGroup struct {
	Category string    `json:"category"`
	Programs []Program `json:"programs"`
}

type Program struct {
	ProgramID   int    `db:"id" json:"id"`                     // SERIAL, PRIMARY KEY
	ProgramName string `db:"program_name" json:"program_name"` // VARCHAR, NOT NULL
	Category    string `db:"category" json:"category"`         // VARCHAR, grouping key, "Other" if absent
	IsActive    bool   `db:"is_active" json:"is_active"`       // BOOLEAN, filters catalog visibility
}
