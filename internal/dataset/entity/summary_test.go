package entity

import "testing"

func TestDatasetSummaryCloneIsDeep(t *testing.T) {
	orig := DatasetSummary{
		ID:   "d1",
		Name: "people.csv",
		Columns: []ColumnProfile{
			{Name: "age", Type: ColumnTypeNumeric, SampleValues: []string{"30"}, Stats: &NumericStats{Min: 30, Max: 30}},
		},
		SampleRows: []Record{{"age": "30"}},
	}

	cp := orig.Clone()
	cp.Columns[0].SampleValues[0] = "99"
	cp.Columns[0].Stats.Max = 99
	cp.SampleRows[0]["age"] = "99"

	if orig.Columns[0].SampleValues[0] != "30" {
		t.Fatalf("sample values shared with clone")
	}
	if orig.Columns[0].Stats.Max != 30 {
		t.Fatalf("stats shared with clone")
	}
	if orig.SampleRows[0]["age"] != "30" {
		t.Fatalf("sample rows shared with clone")
	}
}

func TestColumnNamesInHeaderOrder(t *testing.T) {
	s := DatasetSummary{Columns: []ColumnProfile{{Name: "b"}, {Name: "a"}, {Name: "c"}}}
	got := s.ColumnNames()
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
