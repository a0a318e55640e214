package export

import (
	"fmt"
	"io"
	"time"

	"onboarding-service/internal/domain/submission"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Submissions"

var header = []any{
	"ID", "Place ID", "Name", "Surname", "Position", "Image", "Created at", "Check-in at",
}

// WriteXLSX renders records as a single-sheet workbook, header row first.
func WriteXLSX(w io.Writer, records []submission.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.ID, r.PlaceID, r.UserName, r.UserSurname, r.EmpPosition, r.ImageName(),
			r.CreatedAt.UTC().Format(time.RFC3339), r.CheckinAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(SheetName, "B", "F", 20); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
