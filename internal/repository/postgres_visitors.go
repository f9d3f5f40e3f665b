package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kiosk-data/internal/domain"
)

// ErrVisitorNotFound returned when a visitor id resolves to no row.
var ErrVisitorNotFound = errors.New("visitor not found")

// PostgresVisitorsRepository visitor registrations backed by the
// exhibition_visitors / visitor_programs / visitor_metadata tables.
type PostgresVisitorsRepository struct {
	db *sql.DB
}

func NewPostgresVisitorsRepository(db *sql.DB) *PostgresVisitorsRepository {
	return &PostgresVisitorsRepository{db: db}
}

var _ VisitorsRepository = (*PostgresVisitorsRepository)(nil)

// RegisterVisitor runs fn inside one transaction. The writer's three inserts
// stay strictly ordered (fn drives them sequentially); any error from fn
// rolls everything back.
func (r *PostgresVisitorsRepository) RegisterVisitor(ctx context.Context, fn func(w RegistrationWriter) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&txRegistrationWriter{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// txRegistrationWriter RegistrationWriter bound to one sql.Tx.
type txRegistrationWriter struct {
	tx *sql.Tx
}

var _ RegistrationWriter = (*txRegistrationWriter)(nil)

func (w *txRegistrationWriter) InsertVisitor(ctx context.Context, name, workPhone string) (string, error) {
	query := `
		INSERT INTO exhibition_visitors (name, work_phone, is_converted, converted_at)
		VALUES ($1, $2, false, NULL)
		RETURNING id::text
	`

	var visitorID string
	err := w.tx.QueryRowContext(ctx, query, name, workPhone).Scan(&visitorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.New("Failed to create visitor record")
		}
		return "", fmt.Errorf("failed to insert visitor: %w", err)
	}
	if visitorID == "" {
		return "", errors.New("Failed to create visitor record")
	}
	return visitorID, nil
}

func (w *txRegistrationWriter) InsertVisitorPrograms(ctx context.Context, visitorID string, programIDs []int) error {
	if len(programIDs) == 0 {
		return errors.New("no programs selected")
	}

	// Batch insert: one VALUES tuple per selected program.
	placeholders := make([]string, 0, len(programIDs))
	args := make([]any, 0, len(programIDs)+1)
	args = append(args, visitorID)
	for i, programID := range programIDs {
		placeholders = append(placeholders, fmt.Sprintf("($1::uuid, $%d)", i+2))
		args = append(args, programID)
	}

	query := fmt.Sprintf(
		`INSERT INTO visitor_programs (visitor_id, program_id) VALUES %s`,
		strings.Join(placeholders, ", "),
	)

	if _, err := w.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert visitor programs: %w", err)
	}
	return nil
}

func (w *txRegistrationWriter) InsertVisitorMetadata(ctx context.Context, visitorID string, md *domain.VisitorMetadata) error {
	query := `
		INSERT INTO visitor_metadata (
			visitor_id, ip_address, country, city, region, timezone,
			user_agent, browser, device, submission_date, submission_time
		) VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := w.tx.ExecContext(ctx, query,
		visitorID,
		nullIfEmpty(md.IPAddress),
		nullIfEmpty(md.Country),
		nullIfEmpty(md.City),
		nullIfEmpty(md.Region),
		nullIfEmpty(md.Timezone),
		nullIfEmpty(md.UserAgent),
		nullIfEmpty(md.Browser),
		nullIfEmpty(md.Device),
		nullIfEmpty(md.SubmissionDate),
		nullIfEmpty(md.SubmissionTime),
	)
	if err != nil {
		return fmt.Errorf("failed to insert visitor metadata: %w", err)
	}
	return nil
}

// GetVisitorDetails returns a visitor joined with program names and metadata.
func (r *PostgresVisitorsRepository) GetVisitorDetails(ctx context.Context, visitorID string) (*domain.VisitorDetails, error) {
	if visitorID == "" {
		return nil, fmt.Errorf("visitor_id is required")
	}

	var details domain.VisitorDetails
	err := r.db.QueryRowContext(ctx, `
		SELECT name, work_phone, is_converted, converted_at
		FROM exhibition_visitors
		WHERE id = $1::uuid
	`, visitorID).Scan(&details.Name, &details.WorkPhone, &details.IsConverted, &details.ConvertedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVisitorNotFound
		}
		return nil, fmt.Errorf("failed to get visitor: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.program_name
		FROM visitor_programs vp
		JOIN programs p ON p.id = vp.program_id
		WHERE vp.visitor_id = $1::uuid
	`, visitorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get visitor programs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan program name: %w", err)
		}
		details.Programs = append(details.Programs, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visitor programs: %w", err)
	}

	// Metadata is best-effort on the way in, so a missing row here is fine.
	var md domain.VisitorMetadata
	err = r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(ip_address, ''),
			COALESCE(country, ''),
			COALESCE(city, ''),
			COALESCE(region, ''),
			COALESCE(timezone, ''),
			COALESCE(user_agent, ''),
			COALESCE(browser, ''),
			COALESCE(device, ''),
			COALESCE(submission_date::text, ''),
			COALESCE(submission_time, '')
		FROM visitor_metadata
		WHERE visitor_id = $1::uuid
	`, visitorID).Scan(
		&md.IPAddress, &md.Country, &md.City, &md.Region, &md.Timezone,
		&md.UserAgent, &md.Browser, &md.Device, &md.SubmissionDate, &md.SubmissionTime,
	)
	if err == nil {
		details.Metadata = &md
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get visitor metadata: %w", err)
	}

	return &details, nil
}

// MarkConverted sets is_converted and stamps converted_at.
func (r *PostgresVisitorsRepository) MarkConverted(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return fmt.Errorf("visitor_id is required")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE exhibition_visitors
		SET is_converted = true, converted_at = now()
		WHERE id = $1::uuid
	`, visitorID)
	if err != nil {
		return fmt.Errorf("failed to mark visitor converted: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrVisitorNotFound
	}
	return nil
}

// ListRegistrations returns all registrations for export, oldest first.
func (r *PostgresVisitorsRepository) ListRegistrations(ctx context.Context) ([]RegistrationExportRow, error) {
	query := `
		SELECT
			v.id::text,
			v.name,
			v.work_phone,
			COALESCE(pn.names, ''),
			COALESCE(m.country, ''),
			COALESCE(m.city, ''),
			COALESCE(m.browser, ''),
			COALESCE(m.device, ''),
			v.is_converted,
			v.created_at
		FROM exhibition_visitors v
		LEFT JOIN visitor_metadata m ON m.visitor_id = v.id
		LEFT JOIN LATERAL (
			SELECT string_agg(p.program_name, ', ') AS names
			FROM visitor_programs vp
			JOIN programs p ON p.id = vp.program_id
			WHERE vp.visitor_id = v.id
		) pn ON true
		ORDER BY v.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var out []RegistrationExportRow
	for rows.Next() {
		var row RegistrationExportRow
		if err := rows.Scan(
			&row.VisitorID, &row.Name, &row.WorkPhone, &row.Programs,
			&row.Country, &row.City, &row.Browser, &row.Device,
			&row.IsConverted, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registrations: %w", err)
	}

	return out, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
