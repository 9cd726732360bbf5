package tripkit

import (
	"fmt"

	"github.com/google/uuid"
)

// NewTrip builds a fresh trip skeleton for the inclusive date range
// [start, end]. Dates must already be valid ISO dates; the day sequence
// is generated through the same construction used by ResizeDays.
func NewTrip(title, start, end string) (*Trip, error) {
	count, err := inclusiveDayCount(start, end)
	if err != nil {
		return nil, err
	}
	t := &Trip{
		ID:        uuid.NewString(),
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Days:      make([]Day, 0, count),
		Members:   []Member{},
		Expenses:  DefaultExpenses(),
		Tickets:   TicketSection{Entries: []Ticket{}},
		Currency:  DefaultCurrency(),
		Info:      InfoSection{Entries: []InfoEntry{}},
		Shopping:  DefaultShopping(),
		Luggage:   DefaultLuggage(),
	}
	for i := 0; i < count; i++ {
		date, err := addDays(start, i)
		if err != nil {
			return nil, err
		}
		t.Days = append(t.Days, NewDay(date, i))
	}
	return t, nil
}

// NewDay builds a blank day for the given date at position index
// (zero-based) in the sequence.
func NewDay(date string, index int) Day {
	return Day{
		ID:              uuid.NewString(),
		Date:            date,
		Weekday:         weekdayName(date),
		DayNumber:       dayOfMonth(date),
		Items:           []ItineraryItem{},
		HeroTitle:       fmt.Sprintf("Day %d", index+1),
		WeatherLocation: "",
	}
}

// DefaultExpenses returns an empty expense list.
func DefaultExpenses() ExpenseSection {
	return ExpenseSection{Entries: []Expense{}}
}

// DefaultCurrency returns the currency page defaults: euro home
// currency, yen travel currency, and the starter cards.
func DefaultCurrency() CurrencySection {
	return CurrencySection{
		Home:   "EUR",
		Travel: "JPY",
		Cards: []CurrencyCard{
			{ID: uuid.NewString(), Label: "Cash", Color: "green"},
			{ID: uuid.NewString(), Label: "Debit card", Color: "blue"},
			{ID: uuid.NewString(), Label: "Credit card", Color: "purple"},
			{ID: uuid.NewString(), Label: "Transit card", Color: "orange"},
		},
	}
}

// DefaultShopping returns the starter shopping categories.
func DefaultShopping() ShoppingSection {
	return ShoppingSection{
		Categories: []ShoppingCategory{
			{ID: uuid.NewString(), Title: "Souvenirs", Items: []ShoppingItem{}},
			{ID: uuid.NewString(), Title: "Snacks", Items: []ShoppingItem{}},
			{ID: uuid.NewString(), Title: "Clothes", Items: []ShoppingItem{}},
		},
	}
}

// DefaultLuggage returns the starter packing checklist.
func DefaultLuggage() LuggageSection {
	category := func(title string, labels ...string) LuggageCategory {
		items := make([]LuggageItem, 0, len(labels))
		for _, l := range labels {
			items = append(items, LuggageItem{ID: uuid.NewString(), Label: l})
		}
		return LuggageCategory{ID: uuid.NewString(), Title: title, Items: items}
	}
	return LuggageSection{
		Categories: []LuggageCategory{
			category("Documents", "Passport", "Tickets", "Insurance card", "Copies of bookings"),
			category("Electronics", "Phone charger", "Power bank", "Plug adapter", "Headphones"),
			category("Clothing", "Shirts", "Trousers", "Underwear", "Socks", "Rain jacket"),
			category("Toiletries", "Toothbrush", "Toothpaste", "Deodorant", "Medication"),
		},
	}
}

// SectionDefault returns the default value for a named section as a
// generic JSON object, the same shape SectionValue produces.
func SectionDefault(name string) (map[string]any, error) {
	switch name {
	case SectionMembers:
		return toObject(struct {
			Entries []Member `json:"entries"`
		}{[]Member{}})
	case SectionExpenses:
		return toObject(DefaultExpenses())
	case SectionTickets:
		return toObject(TicketSection{Entries: []Ticket{}})
	case SectionCurrency:
		return toObject(DefaultCurrency())
	case SectionInfo:
		return toObject(InfoSection{Entries: []InfoEntry{}})
	case SectionShopping:
		return toObject(DefaultShopping())
	case SectionLuggage:
		return toObject(DefaultLuggage())
	}
	return nil, fmt.Errorf("tripkit: unknown section %q", name)
}

// SectionShape describes the named sub-collections of a section that
// the schema reconciler checks against the current defaults. MinLen is
// derived from the default value's sub-collection length.
type SectionShape struct {
	Section string
	// Collections maps a top-level JSON key to the minimum element
	// count below which the stored value is considered stale.
	Collections map[string]int
}

// SectionShapes returns the shape descriptors for every section whose
// defaults carry known sub-collections. Sections without starter
// content have nothing to reconcile and are absent.
func SectionShapes() []SectionShape {
	return []SectionShape{
		{Section: SectionCurrency, Collections: map[string]int{"cards": len(DefaultCurrency().Cards)}},
		{Section: SectionShopping, Collections: map[string]int{"categories": len(DefaultShopping().Categories)}},
		{Section: SectionLuggage, Collections: map[string]int{"categories": len(DefaultLuggage().Categories)}},
	}
}
