package tripkit

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestExportTripFilename(t *testing.T) {
	trip := mustTrip(t, "Summer in Japan!", "2026-07-01", "2026-07-03")
	data, name, err := ExportTrip(trip)
	if err != nil {
		t.Fatalf("ExportTrip failed: %v", err)
	}
	if name != "summer-in-japan.json" {
		t.Errorf("filename = %q, want summer-in-japan.json", name)
	}
	if !json.Valid(data) {
		t.Error("exported body is not valid JSON")
	}
}

func TestExportTripEmptyTitleFallback(t *testing.T) {
	trip := mustTrip(t, "", "2026-07-01", "2026-07-01")
	_, name, err := ExportTrip(trip)
	if err != nil {
		t.Fatalf("ExportTrip failed: %v", err)
	}
	if name != "trip.json" {
		t.Errorf("filename = %q, want trip.json", name)
	}
}

func TestExportImportRoundtrip(t *testing.T) {
	trip := mustTrip(t, "Kyoto", "2026-10-02", "2026-10-04")
	trip.Days[1].Items = []ItineraryItem{{ID: "i1", Time: "09:00", Title: "Nishiki market"}}
	trip.Expenses.Entries = []Expense{{ID: "e1", Title: "Lunch", Amount: 1200}}

	data, _, err := ExportTrip(trip)
	if err != nil {
		t.Fatalf("ExportTrip failed: %v", err)
	}
	got, err := ParseImport(data)
	if err != nil {
		t.Fatalf("ParseImport failed: %v", err)
	}
	if got.Title != "Kyoto" {
		t.Errorf("title = %q, want Kyoto", got.Title)
	}
	if got.Days[1].Items[0].Title != "Nishiki market" {
		t.Errorf("item = %q, want Nishiki market", got.Days[1].Items[0].Title)
	}
	if got.Expenses.Entries[0].Amount != 1200 {
		t.Errorf("amount = %d, want 1200", got.Expenses.Entries[0].Amount)
	}
}

func TestParseImportMalformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"truncated", `{"title": "Kyoto", "days": [`},
		{"not an object", `[1, 2, 3]`},
		{"empty object", `{}`},
		{"bad start date", `{"title": "Kyoto", "startDate": "next tuesday"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseImport([]byte(tc.body)); !errors.Is(err, ErrImportMalformed) {
				t.Errorf("ParseImport(%s) = %v, want ErrImportMalformed", tc.name, err)
			}
		})
	}
}

func TestParseImportRecomputesDerivedFields(t *testing.T) {
	// Weekday and day number in the payload are wrong on purpose; the
	// date range is the source of truth.
	body := `{
		"title": "Kyoto",
		"startDate": "2026-10-02",
		"endDate": "2026-10-03",
		"days": [
			{"id": "d1", "date": "1999-01-01", "weekday": "Monday", "dayNumber": 1},
			{"date": "1999-01-02", "weekday": "Monday", "dayNumber": 2}
		]
	}`
	got, err := ParseImport([]byte(body))
	if err != nil {
		t.Fatalf("ParseImport failed: %v", err)
	}
	if got.Days[0].Date != "2026-10-02" {
		t.Errorf("day 1 date = %q, want 2026-10-02", got.Days[0].Date)
	}
	// 2026-10-02 is a Friday.
	if got.Days[0].Weekday != "Friday" {
		t.Errorf("day 1 weekday = %q, want Friday", got.Days[0].Weekday)
	}
	if got.Days[1].DayNumber != 3 {
		t.Errorf("day 2 dayNumber = %d, want 3", got.Days[1].DayNumber)
	}
	if got.Days[0].ID != "d1" {
		t.Errorf("existing id = %q, want d1 preserved", got.Days[0].ID)
	}
	if got.Days[1].ID == "" {
		t.Error("missing day id must be assigned")
	}
	if got.Days[1].Items == nil {
		t.Error("nil items must be normalized to an empty slice")
	}
	if got.ID == "" {
		t.Error("missing trip id must be assigned")
	}
}

func TestParseImportKeepsUnknownFieldsOut(t *testing.T) {
	body := `{"title": "Kyoto", "startDate": "2026-10-02", "endDate": "2026-10-02", "days": []}`
	got, err := ParseImport([]byte(body))
	if err != nil {
		t.Fatalf("ParseImport failed: %v", err)
	}
	if strings.TrimSpace(got.Title) != "Kyoto" {
		t.Errorf("title = %q, want Kyoto", got.Title)
	}
}
