package tripkit

import "testing"

func TestKnownSection(t *testing.T) {
	for _, name := range []string{
		SectionMembers, SectionExpenses, SectionTickets, SectionCurrency,
		SectionInfo, SectionShopping, SectionLuggage,
	} {
		if !KnownSection(name) {
			t.Errorf("KnownSection(%q) = false", name)
		}
	}
	for _, name := range []string{"", "days", "trip", "Expenses"} {
		if KnownSection(name) {
			t.Errorf("KnownSection(%q) = true", name)
		}
	}
}

func TestIsViewerSection(t *testing.T) {
	for _, name := range ViewerSections {
		if !IsViewerSection(name) {
			t.Errorf("IsViewerSection(%q) = false", name)
		}
	}
	for _, name := range []string{SectionMembers, SectionTickets, SectionInfo} {
		if IsViewerSection(name) {
			t.Errorf("IsViewerSection(%q) = true, want owner-only", name)
		}
	}
}

func TestSectionValueRoundtrip(t *testing.T) {
	trip := mustTrip(t, "Kyoto", "2026-10-02", "2026-10-03")
	trip.Expenses.Entries = []Expense{{ID: "e1", Title: "Lunch", Amount: 1200, Category: "food"}}

	value, err := SectionValue(trip, SectionExpenses)
	if err != nil {
		t.Fatalf("SectionValue failed: %v", err)
	}
	entries, _ := value["entries"].([]any)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	entry, _ := entries[0].(map[string]any)
	entry["amount"] = float64(1500)
	if err := SetSectionValue(trip, SectionExpenses, value); err != nil {
		t.Fatalf("SetSectionValue failed: %v", err)
	}
	if trip.Expenses.Entries[0].Amount != 1500 {
		t.Errorf("amount = %d, want 1500", trip.Expenses.Entries[0].Amount)
	}
	if trip.Expenses.Entries[0].Category != "food" {
		t.Errorf("category = %q, want food preserved", trip.Expenses.Entries[0].Category)
	}
}

func TestSectionValueMembersWrapped(t *testing.T) {
	trip := mustTrip(t, "Kyoto", "2026-10-02", "2026-10-03")
	trip.Members = []Member{{ID: "m1", Name: "Alex"}}

	value, err := SectionValue(trip, SectionMembers)
	if err != nil {
		t.Fatalf("SectionValue failed: %v", err)
	}
	entries, ok := value["entries"].([]any)
	if !ok {
		t.Fatalf("members value = %v, want an entries wrapper", value)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}

	entries = append(entries, map[string]any{"id": "m2", "name": "Sam"})
	value["entries"] = entries
	if err := SetSectionValue(trip, SectionMembers, value); err != nil {
		t.Fatalf("SetSectionValue failed: %v", err)
	}
	if len(trip.Members) != 2 || trip.Members[1].Name != "Sam" {
		t.Errorf("members = %+v, want Alex and Sam", trip.Members)
	}
}

func TestSectionValueUnknown(t *testing.T) {
	trip := mustTrip(t, "Kyoto", "2026-10-02", "2026-10-03")
	if _, err := SectionValue(trip, "bogus"); err == nil {
		t.Error("expected error for unknown section")
	}
	if err := SetSectionValue(trip, "bogus", map[string]any{}); err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestCloneIsDeep(t *testing.T) {
	trip := mustTrip(t, "Kyoto", "2026-10-02", "2026-10-03")
	trip.Days[0].Items = []ItineraryItem{{ID: "i1", Title: "Museum"}}

	clone, err := trip.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	clone.Days[0].Items[0].Title = "Aquarium"
	clone.Luggage.Categories[0].Items[0].Packed = true

	if trip.Days[0].Items[0].Title != "Museum" {
		t.Errorf("original item = %q, want Museum", trip.Days[0].Items[0].Title)
	}
	if trip.Luggage.Categories[0].Items[0].Packed {
		t.Error("original luggage item mutated through the clone")
	}
}
