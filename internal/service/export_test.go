package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

func TestExportSummaryRecord(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Export(context.Background(), models.FilterState{}, ExportOptions{Format: ExportJSON})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if result.RecordCount != 1 {
		t.Fatalf("recordCount = %d, want single summary record", result.RecordCount)
	}
	if !strings.HasSuffix(result.Filename, ".json") {
		t.Errorf("filename = %s, want .json suffix", result.Filename)
	}

	var records []map[string]any
	if err := json.Unmarshal(result.Data, &records); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if records[0]["entity_type"] != "summary" {
		t.Errorf("entity_type = %v, want summary", records[0]["entity_type"])
	}
}

func TestExportCSVHeaderUnion(t *testing.T) {
	svc := newTestService(t)
	dept := svc.Store().Departments()[0]

	result, err := svc.Export(context.Background(), models.FilterState{
		Departments: []string{dept.ID},
	}, ExportOptions{Format: ExportCSV})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasSuffix(result.Filename, ".csv") {
		t.Errorf("filename = %s, want .csv suffix", result.Filename)
	}

	rows, err := csv.NewReader(strings.NewReader(string(result.Data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("csv has %d rows, want header plus records", len(rows))
	}

	header := rows[0]
	seen := make(map[string]bool)
	for _, col := range header {
		if seen[col] {
			t.Errorf("duplicate column %q", col)
		}
		seen[col] = true
	}
	if !seen["entity_type"] || !seen["current_spend"] || !seen["weekly_spend"] {
		t.Errorf("header missing expected columns: %v", header)
	}
	// Department records and user records contribute different keys;
	// every row still has one cell per header column.
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			t.Errorf("row %d has %d cells, want %d", i, len(row), len(header))
		}
	}
}

func TestExportIncludeDetails(t *testing.T) {
	svc := newTestService(t)
	dept := svc.Store().Departments()[0]

	without, err := svc.Export(context.Background(), models.FilterState{
		Departments: []string{dept.ID},
	}, ExportOptions{Format: ExportJSON})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	with, err := svc.Export(context.Background(), models.FilterState{
		Departments: []string{dept.ID},
	}, ExportOptions{Format: ExportJSON, IncludeDetails: true})
	if err != nil {
		t.Fatalf("Export with details: %v", err)
	}

	if with.RecordCount <= without.RecordCount {
		t.Errorf("details added no records: %d vs %d", with.RecordCount, without.RecordCount)
	}
}

func TestCSVCellQuoting(t *testing.T) {
	rec := newExportRecord()
	rec.set("name", "Acme, Inc.")
	rec.set("nested", map[string]int{"a": 1})
	rec.set("empty", nil)

	data, err := marshalRecordsCSV([]*exportRecord{rec})
	if err != nil {
		t.Fatalf("marshalRecordsCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	row := rows[1]
	if row[0] != "Acme, Inc." {
		t.Errorf("comma value round-tripped as %q", row[0])
	}
	if row[1] != `{"a":1}` {
		t.Errorf("nested value = %q, want JSON string", row[1])
	}
	if row[2] != "" {
		t.Errorf("nil value = %q, want empty cell", row[2])
	}
}

func TestExportRecordJSONOrder(t *testing.T) {
	rec := newExportRecord()
	rec.set("z_first", 1)
	rec.set("a_second", 2)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(data)
	if strings.Index(got, "z_first") > strings.Index(got, "a_second") {
		t.Errorf("fields not in insertion order: %s", got)
	}
}
