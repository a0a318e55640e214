package export

import (
	"bytes"
	"testing"
	"time"

	"onboarding-service/internal/domain/submission"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	img := "store7_Petrov_Ivan.jpg"
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	records := []submission.Record{
		{ID: 1, PlaceID: "store7", UserName: "Ivan", UserSurname: "Petrov", EmpPosition: "Cashier", UserImage: &img, CreatedAt: at, CheckinAt: at},
		{ID: 2, PlaceID: "store7", UserName: "Anna", UserSurname: "Ivanova", EmpPosition: "Manager", CreatedAt: at, CheckinAt: at},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, records); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (header + 2)", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][7] != "Check-in at" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "store7" || rows[1][2] != "Ivan" || rows[1][5] != img {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[1][6] != "2026-10-19T08:00:00Z" {
		t.Fatalf("created_at cell = %q", rows[1][6])
	}
	// no image → empty cell
	if len(rows[2]) > 5 && rows[2][5] != "" {
		t.Fatalf("expected empty image cell, got %q", rows[2][5])
	}
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(SheetName)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}
