package tripkit

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrImportMalformed is returned when an imported document is not a
// parseable trip. The existing trip is left untouched on this path.
var ErrImportMalformed = errors.New("tripkit: imported document is not a valid trip")

// ExportTrip serializes the trip verbatim for download, returning the
// JSON body and a filename derived from the trip title.
func ExportTrip(t *Trip) ([]byte, string, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, "", err
	}
	name := Slugify(t.Title)
	if name == "" {
		name = "trip"
	}
	return data, name + ".json", nil
}

// ParseImport validates data as a trip document. Malformed input fails
// with ErrImportMalformed before anything is replaced. Derived day
// fields are recomputed from the imported date range rather than
// trusted, and missing ids are assigned fresh.
func ParseImport(data []byte) (*Trip, error) {
	var t Trip
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportMalformed, err)
	}
	if t.Title == "" && t.StartDate == "" && len(t.Days) == 0 {
		return nil, fmt.Errorf("%w: no trip content", ErrImportMalformed)
	}
	if t.StartDate != "" {
		if _, err := parseDate(t.StartDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImportMalformed, err)
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	for i := range t.Days {
		d := &t.Days[i]
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if t.StartDate != "" {
			date, err := addDays(t.StartDate, i)
			if err == nil {
				d.Date = date
				d.Weekday = weekdayName(date)
				d.DayNumber = dayOfMonth(date)
			}
		}
		if d.Items == nil {
			d.Items = []ItineraryItem{}
		}
	}
	return &t, nil
}
