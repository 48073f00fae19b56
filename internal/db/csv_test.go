package db

import (
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	in := "\ufeffTimestamp,User,Song,Status\n" +
		"6/14/2025 17:00:00,Alex,Wobble,\n" +
		",,,\n" +
		"6/14/2025 19:00:00,Jordan\n" +
		"6/14/2025 19:05:00,Sam,\"Slide, Cha Cha\",Played,extra\n"

	sheet, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if sheet.Header[0] != "Timestamp" {
		t.Errorf("expected BOM to be stripped, got %q", sheet.Header[0])
	}
	if len(sheet.Rows) != 3 {
		t.Fatalf("expected 3 rows (blank skipped), got %d", len(sheet.Rows))
	}
	if sheet.Rows[1]["Song"] != "" || sheet.Rows[1]["User"] != "Jordan" {
		t.Errorf("short row not padded: %v", sheet.Rows[1])
	}
	if sheet.Rows[2]["Song"] != "Slide, Cha Cha" || sheet.Rows[2]["Status"] != "Played" {
		t.Errorf("unexpected quoted row: %v", sheet.Rows[2])
	}
	if len(sheet.Rows[2]) != 4 {
		t.Errorf("expected extra cells dropped, got %v", sheet.Rows[2])
	}
}

func TestReadCSVEmpty(t *testing.T) {
	sheet, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if sheet.Header != nil || sheet.Rows != nil {
		t.Errorf("expected empty sheet, got %+v", sheet)
	}
}
