package domain

// VisitorMetadata best-effort submission context (visitor_metadata table).
// Every field is optional: enrichment failures leave fields empty and empty
// fields are persisted as NULL. Assembled once per submission attempt.
type VisitorMetadata struct {
	IPAddress      string `db:"ip_address" json:"ip_address,omitempty"`
	Country        string `db:"country" json:"country,omitempty"`
	City           string `db:"city" json:"city,omitempty"`
	Region         string `db:"region" json:"region,omitempty"`
	Timezone       string `db:"timezone" json:"timezone,omitempty"`
	UserAgent      string `db:"user_agent" json:"user_agent,omitempty"`
	Browser        string `db:"browser" json:"browser,omitempty"`
	Device         string `db:"device" json:"device,omitempty"`
	SubmissionDate string `db:"submission_date" json:"submission_date,omitempty"` // ISO 8601 date, UTC
	SubmissionTime string `db:"submission_time" json:"submission_time,omitempty"` // local clock, HH:MM:SS
}

// DisplayLocation formats the metadata for the confirmation screen,
// e.g. "Berlin, Germany • Chrome • Desktop".
func (m *VisitorMetadata) DisplayLocation() string {
	parts := []string{}
	if m.City != "" && m.Country != "" {
		parts = append(parts, m.City+", "+m.Country)
	} else if m.Country != "" {
		parts = append(parts, m.Country)
	}
	if m.Browser != "" {
		parts = append(parts, m.Browser)
	}
	if m.Device != "" {
		parts = append(parts, m.Device)
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " • "
		}
		out += p
	}
	return out
}
