package sheets

import (
	"testing"

	"wydatki/internal/core"
)

func TestDecodeValues(t *testing.T) {
	values := [][]interface{}{
		{"date", "category", "description", "amount"},
		{"2025-09-01", "food", "lunch", "12.50"},
		{},
		{"", "", ""},
		{"2025-09-10", "transport"},
		{"2025-09-11", "inne", "-", 3.5},
	}
	got := decodeValues(values)
	want := []core.Record{
		{Date: "2025-09-01", Category: "food", Description: "lunch", Amount: "12.50"},
		{Date: "2025-09-10", Category: "transport"},
		{Date: "2025-09-11", Category: "inne", Description: "-", Amount: "3.5"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records: %+v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeValuesEmpty(t *testing.T) {
	if got := decodeValues(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
	if got := decodeValues([][]interface{}{{"date", "category", "description", "amount"}}); len(got) != 0 {
		t.Fatalf("header only should decode to nothing, got %+v", got)
	}
}

func TestToRow(t *testing.T) {
	row := toRow(core.Record{Date: "d", Category: "c", Description: "x", Amount: "1.00"}.Values())
	if len(row) != 4 || row[3] != "1.00" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestDecodeValuesWithoutHeader(t *testing.T) {
	values := [][]interface{}{
		{"2025-09-01", "food", "lunch", "12.50"},
		{"2025-09-02", "food", "coffee", "4.00"},
	}
	got := decodeValues(values)
	if len(got) != 2 {
		t.Fatalf("first row is data and must be kept, got %+v", got)
	}
	if got[0].Amount != "12.50" {
		t.Fatalf("unexpected first record %+v", got[0])
	}
}

func TestIsHeader(t *testing.T) {
	tests := []struct {
		fields []string
		want   bool
	}{
		{[]string{"date", "category", "description", "amount"}, true},
		{[]string{" Date ", "CATEGORY", "description", "amount", "extra"}, true},
		{[]string{"date", "category"}, false},
		{[]string{"2025-09-01", "food", "lunch", "12.50"}, false},
	}
	for _, tt := range tests {
		if got := isHeader(tt.fields); got != tt.want {
			t.Errorf("isHeader(%v) = %v, want %v", tt.fields, got, tt.want)
		}
	}
}
