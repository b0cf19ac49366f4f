package joshexport

import "testing"

func TestEncodeDecodeRowRoundTrips(t *testing.T) {
	row := Row{
		"age":    "3",
		"height": "1.82 m",
		"name":   "deer-1",
	}

	line, err := EncodeRow(row, 5, 2)
	if err != nil {
		t.Fatalf("EncodeRow: %v", err)
	}

	got, step, replicate, err := DecodeRow(line)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if step != 5 || replicate != 2 {
		t.Fatalf("step/replicate = %d/%d, want 5/2", step, replicate)
	}
	for k, v := range row {
		if got[k] != v {
			t.Fatalf("column %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestDecodeRowRejectsInvalidJSON(t *testing.T) {
	if _, _, _, err := DecodeRow("not json"); err == nil {
		t.Fatal("expected error for invalid JSON line")
	}
}

func TestSortedColumnsOrdersNaturally(t *testing.T) {
	in := []string{"attr10", "attr2", "attr1"}
	want := []string{"attr1", "attr2", "attr10"}

	got := SortedColumns(in)
	for i, name := range want {
		if got[i] != name {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
