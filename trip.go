package tripkit

import (
	"encoding/json"
	"fmt"
)

// ShareMode selects which persistence scope a request operates on.
// Owners edit the canonical trip document; viewers edit private
// per-section overlays that never flow back into the canonical trip.
type ShareMode string

const (
	ModeOwner  ShareMode = "owner"
	ModeViewer ShareMode = "viewer"
)

// Trip is the canonical itinerary document. It is only ever replaced
// wholesale through Controller.Commit; no caller mutates a stored copy
// in place.
type Trip struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"` // ISO date, no time component
	EndDate   string `json:"endDate"`

	Days []Day `json:"days"`

	Members  []Member        `json:"members"`
	Expenses ExpenseSection  `json:"expenses"`
	Tickets  TicketSection   `json:"tickets"`
	Currency CurrencySection `json:"currency"`
	Info     InfoSection     `json:"info"`
	Shopping ShoppingSection `json:"shopping"`
	Luggage  LuggageSection  `json:"luggage"`
}

// Day is one calendar day of the itinerary. ID is assigned at creation
// and survives date-range changes; Date, Weekday and DayNumber are
// derived from the trip's date range and recomputed on every
// reconciliation, never trusted from stored state.
type Day struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Weekday         string          `json:"weekday"`
	DayNumber       int             `json:"dayNumber"`
	Items           []ItineraryItem `json:"items"`
	HeroTitle       string          `json:"heroTitle"`
	HeroImage       string          `json:"heroImage"`
	HeroLocation    string          `json:"heroLocation"`
	WeatherLocation string          `json:"weatherLocation"` // "" means unset
	Lat             float64         `json:"lat,omitempty"`
	Lon             float64         `json:"lon,omitempty"`
}

// ItineraryItem is a single scheduled entry within a day.
type ItineraryItem struct {
	ID       string `json:"id"`
	Time     string `json:"time"` // HH:MM, free-form
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Link     string `json:"link,omitempty"`
	Note     string `json:"note,omitempty"`
}

// Member is a person travelling on the trip.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ExpenseSection holds the shared expense list.
type ExpenseSection struct {
	Entries []Expense `json:"entries"`
}

// Expense is one spent amount. Amount is in minor units of the travel
// currency (yen, cents) so arithmetic stays integral.
type Expense struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Amount   int64  `json:"amount"`
	Category string `json:"category,omitempty"`
	PaidBy   string `json:"paidBy,omitempty"`
	Date     string `json:"date,omitempty"`
}

// CurrencySection holds the currency configuration, the last fetched
// exchange rate, and the wallet cards. RateStatus is "ok", "error" or
// "" (never fetched); a failed fetch only ever touches RateStatus.
type CurrencySection struct {
	Home       string         `json:"home"`
	Travel     string         `json:"travel"`
	Rate       float64        `json:"rate"`
	RateStatus string         `json:"rateStatus"`
	UpdatedAt  string         `json:"updatedAt,omitempty"`
	Cards      []CurrencyCard `json:"cards"`
}

// CurrencyCard is a payment card or cash pouch shown on the money page.
type CurrencyCard struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Note  string `json:"note,omitempty"`
	Color string `json:"color,omitempty"`
}

// TicketSection holds booked tickets and reservations.
type TicketSection struct {
	Entries []Ticket `json:"entries"`
}

// Ticket is a single reservation reference.
type Ticket struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Kind  string `json:"kind,omitempty"` // flight, rail, event
	Ref   string `json:"ref,omitempty"`
	Date  string `json:"date,omitempty"`
	Note  string `json:"note,omitempty"`
}

// InfoSection holds free-form trip notes (markdown) and key/value
// reference entries such as hotel addresses and emergency numbers.
type InfoSection struct {
	Notes   string      `json:"notes"`
	Entries []InfoEntry `json:"entries"`
}

// InfoEntry is one labelled reference value.
type InfoEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ShoppingSection holds the shopping list grouped by category.
// Category order is display order.
type ShoppingSection struct {
	Categories []ShoppingCategory `json:"categories"`
}

// ShoppingCategory groups shopping items under a heading.
type ShoppingCategory struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Items []ShoppingItem `json:"items"`
}

// ShoppingItem is one thing to buy.
type ShoppingItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Price  int64  `json:"price,omitempty"`
	Bought bool   `json:"bought"`
}

// LuggageSection holds the packing checklist grouped by category.
// Category order is display order.
type LuggageSection struct {
	Categories []LuggageCategory `json:"categories"`
}

// LuggageCategory groups packing items under a heading.
type LuggageCategory struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Items []LuggageItem `json:"items"`
}

// LuggageItem is one thing to pack.
type LuggageItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Packed bool   `json:"packed"`
}

// Section names as they appear in storage keys and API routes.
const (
	SectionMembers  = "members"
	SectionExpenses = "expenses"
	SectionTickets  = "tickets"
	SectionCurrency = "currency"
	SectionInfo     = "info"
	SectionShopping = "shopping"
	SectionLuggage  = "luggage"
)

// ViewerSections lists the sections a viewer may edit through a local
// overlay. Everything else is owner-only.
var ViewerSections = []string{SectionExpenses, SectionCurrency, SectionLuggage, SectionShopping}

// IsViewerSection reports whether name is overlay-capable.
func IsViewerSection(name string) bool {
	for _, s := range ViewerSections {
		if s == name {
			return true
		}
	}
	return false
}

// KnownSection reports whether name is a section of the trip document.
func KnownSection(name string) bool {
	switch name {
	case SectionMembers, SectionExpenses, SectionTickets, SectionCurrency,
		SectionInfo, SectionShopping, SectionLuggage:
		return true
	}
	return false
}

// SectionValue returns the named section of t as a generic JSON object,
// the shape the section store patches against.
func SectionValue(t *Trip, name string) (map[string]any, error) {
	var src any
	switch name {
	case SectionMembers:
		// Members are a bare list; wrap so patches stay object-shaped.
		src = struct {
			Entries []Member `json:"entries"`
		}{t.Members}
	case SectionExpenses:
		src = t.Expenses
	case SectionTickets:
		src = t.Tickets
	case SectionCurrency:
		src = t.Currency
	case SectionInfo:
		src = t.Info
	case SectionShopping:
		src = t.Shopping
	case SectionLuggage:
		src = t.Luggage
	default:
		return nil, fmt.Errorf("tripkit: unknown section %q", name)
	}
	return toObject(src)
}

// SetSectionValue writes a generic JSON object back into the named
// typed section of t.
func SetSectionValue(t *Trip, name string, value map[string]any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	switch name {
	case SectionMembers:
		var wrapped struct {
			Entries []Member `json:"entries"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		t.Members = wrapped.Entries
		return nil
	case SectionExpenses:
		return json.Unmarshal(data, &t.Expenses)
	case SectionTickets:
		return json.Unmarshal(data, &t.Tickets)
	case SectionCurrency:
		return json.Unmarshal(data, &t.Currency)
	case SectionInfo:
		return json.Unmarshal(data, &t.Info)
	case SectionShopping:
		return json.Unmarshal(data, &t.Shopping)
	case SectionLuggage:
		return json.Unmarshal(data, &t.Luggage)
	}
	return fmt.Errorf("tripkit: unknown section %q", name)
}

// Clone returns a deep copy of t via a JSON round trip. Commits always
// operate on clones so readers never observe a half-built document.
func (t *Trip) Clone() (*Trip, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var out Trip
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// toObject converts any JSON-marshalable value into a generic object.
func toObject(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
