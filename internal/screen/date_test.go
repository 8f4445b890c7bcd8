package screen

import (
	"testing"

	"github.com/meshintel/paperscreen/pkg/types"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		rec  types.Record
		want string
	}{
		{"full date", types.Record{PubDate: "2023 Apr 15"}, "2023-04-15"},
		{"year and month", types.Record{PubDate: "2023 Apr"}, "2023-04-01"},
		{"bare year", types.Record{PubDate: "2023"}, "2023-01-01"},
		{"lowercase month", types.Record{PubDate: "2024 oct 3"}, "2024-10-03"},
		{"year range keeps suffix rule", types.Record{PubDate: "2024-2025"}, "2024-2025-01-01"},
		{
			"published wins over electronic",
			types.Record{PubDate: "2023 Apr 15", ElectronicDate: "2020 Jan 1"},
			"2023-04-15",
		},
		{"electronic fallback", types.Record{ElectronicDate: "2020 Jun 5"}, "2020-06-05"},
		{"entry date keeps trailing time", types.Record{EntryDate: "2023/04/15 06:00"}, "2023-04-15 06:00"},
		{"revision date last resort", types.Record{RevisionDate: "2022 Feb 2"}, "2022-02-02"},
		{
			"month range falls through to next field",
			types.Record{PubDate: "2023 Nov-Dec", ElectronicDate: "2023 Nov 20"},
			"2023-11-20",
		},
		{
			"empty field skipped",
			types.Record{PubDate: "", ElectronicDate: "2021 Mar 9"},
			"2021-03-09",
		},
		{"unparseable yields empty", types.Record{PubDate: "not a date"}, ""},
		{"no date fields", types.Record{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.rec); got != tt.want {
				t.Errorf("NormalizeDate() = %q, want %q", got, tt.want)
			}
		})
	}
}
