package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"kiosk-data/internal/repository"
)

// RegistrationExportHeader export column order.
var RegistrationExportHeader = []string{
	"Name",
	"Work Phone",
	"Programs",
	"Country",
	"City",
	"Browser",
	"Device",
	"Converted",
	"Registered At",
}

// GenerateRegistrationExport renders the registrations as an xlsx workbook.
// rows may be empty, in which case only the header is written.
func GenerateRegistrationExport(rows []repository.RegistrationExportRow) ([]byte, error) {
	f := excelize.NewFile()
	// Note: no deferred Close here, WriteTo needs the file open.

	sheetName := "Registrations"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range RegistrationExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{
		25, // Name
		20, // Work Phone
		40, // Programs
		18, // Country
		18, // City
		12, // Browser
		12, // Device
		12, // Converted
		22, // Registered At
	}
	for i := range RegistrationExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for rowIdx, item := range rows {
		converted := "No"
		if item.IsConverted {
			converted = "Yes"
		}
		values := []any{
			item.Name,
			item.WorkPhone,
			item.Programs,
			item.Country,
			item.City,
			item.Browser,
			item.Device,
			converted,
			item.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
