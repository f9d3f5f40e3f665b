package httpapi

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kiosk-data/internal/repository"
)

func TestGenerateRegistrationExport(t *testing.T) {
	rows := []repository.RegistrationExportRow{
		{
			VisitorID:   "demo-1",
			Name:        "Jordan Smith",
			WorkPhone:   "+1 (555) 000-0000",
			Programs:    "Computer Science, Data Science",
			Country:     "Germany",
			City:        "Berlin",
			Browser:     "Chrome",
			Device:      "Desktop",
			IsConverted: true,
			CreatedAt:   time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
		},
		{
			VisitorID: "demo-2",
			Name:      "Alex Doe",
			WorkPhone: "5550000",
			Programs:  "Marketing",
			CreatedAt: time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
		},
	}

	data, err := GenerateRegistrationExport(rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cells, err := f.GetRows("Registrations")
	require.NoError(t, err)
	require.Len(t, cells, 3) // header + 2 rows

	require.Equal(t, RegistrationExportHeader, cells[0][:len(RegistrationExportHeader)])
	require.Equal(t, "Jordan Smith", cells[1][0])
	require.Equal(t, "Computer Science, Data Science", cells[1][2])
	require.Equal(t, "Yes", cells[1][7])
	require.Equal(t, "Alex Doe", cells[2][0])
	require.Equal(t, "No", cells[2][7])
}

func TestGenerateRegistrationExport_Empty(t *testing.T) {
	data, err := GenerateRegistrationExport(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cells, err := f.GetRows("Registrations")
	require.NoError(t, err)
	require.Len(t, cells, 1)
}
