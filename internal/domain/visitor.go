package domain

import "time"

// Visitor exhibition visitor record (exhibition_visitors table)
type Visitor struct {
	// Primary key
	VisitorID string `db:"id"` // UUID, generated by the store

	Name      string `db:"name"`       // VARCHAR, NOT NULL
	WorkPhone string `db:"work_phone"` // VARCHAR, NOT NULL

	// Conversion tracking: set once sales follows up with the visitor
	IsConverted bool       `db:"is_converted"` // BOOLEAN, DEFAULT false
	ConvertedAt *time.Time `db:"converted_at"` // TIMESTAMPTZ, nullable

	CreatedAt time.Time `db:"created_at"` // TIMESTAMPTZ, DEFAULT now()
}

// VisitorFormData kiosk form draft as submitted by the UI.
// SelectedPrograms keeps the order the visitor tapped the programs in and is
// not deduplicated: a program id listed twice yields two link rows.
type VisitorFormData struct {
	Name             string `json:"name"`
	WorkPhone        string `json:"workPhone"`
	SelectedPrograms []int  `json:"selectedPrograms"`
}

// VisitorDetails visitor joined with program names and metadata, used by the
// confirmation view.
type VisitorDetails struct {
	Name        string           `json:"name"`
	WorkPhone   string           `json:"work_phone"`
	Programs    []string         `json:"programs"`
	Metadata    *VisitorMetadata `json:"metadata,omitempty"`
	IsConverted bool             `json:"is_converted"`
	ConvertedAt *time.Time       `json:"converted_at,omitempty"`
}
