package record

import (
	"strings"
	"testing"
)

func TestPropertyID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"The Residences on Bay", "THERESIDEN"},
		{"Maple & Oak #2", "MAPLEOAK2"},
		{"abc", "ABC"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PropertyID(tt.name); got != tt.want {
			t.Errorf("PropertyID(%q) = %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestPropertyTextChunkNeverEmpty(t *testing.T) {
	p := Property{ID: "EMPTY1"}
	chunk := p.TextChunk(1)
	if strings.TrimSpace(chunk) == "" {
		t.Fatal("text chunk must not be empty")
	}

	rating := 4.5
	beds := 2
	full := Property{
		ID: "RES1", Name: "The Residences", City: "Toronto",
		Rating: &rating, Bedrooms: &beds, RoomType: "Suite",
		Amenities: []string{"Gym", "Pool"}, BuildingType: "Apartment Building",
		PetFriendly: true, Description: "The Residences Toronto 4.5",
	}
	chunk = full.TextChunk(3)
	for _, want := range []string{
		"Property 3: The Residences",
		"Location: Toronto",
		"Rating: 4.5/5.0",
		"Bedrooms: 2",
		"Pet Friendly: Yes",
		"Amenities: Gym, Pool",
	} {
		if !strings.Contains(chunk, want) {
			t.Errorf("chunk missing %q:\n%s", want, chunk)
		}
	}
}

func TestFAQTextChunk(t *testing.T) {
	f := FAQ{
		ID: "FQ_4", Question: "How do I book a reservation?",
		Answer: "Call us or book online.", Category: "Booking & Reservations",
		Tags: []string{"booking", "reservation"},
	}
	chunk := f.TextChunk(1)
	want := "FAQ 1: How do I book a reservation? | Category: Booking & Reservations | Answer: Call us or book online. | Tags: booking, reservation"
	if chunk != want {
		t.Errorf("TextChunk = %q; want %q", chunk, want)
	}

	empty := FAQ{ID: "FQ_9"}
	if strings.TrimSpace(empty.TextChunk(2)) == "" {
		t.Error("FAQ text chunk must not be empty")
	}
}

func TestDedupeProperties(t *testing.T) {
	rating1 := 4.1
	rating2 := 4.9
	in := []Property{
		{ID: "A", Name: "Alpha", City: "Toronto", Rating: &rating1},
		{ID: "B", Name: "Beta", City: "Ottawa"},
		{ID: "A2", Name: "Alpha", City: "Toronto", Rating: &rating2}, // dup of first
		{ID: "A3", Name: "Alpha", City: "Halifax"},                  // different city, kept
	}
	out := DedupeProperties(in)
	if len(out) != 3 {
		t.Fatalf("got %d records; want 3", len(out))
	}
	// First occurrence wins with all its fields.
	if out[0].ID != "A" || out[0].Rating == nil || *out[0].Rating != 4.1 {
		t.Errorf("first occurrence not preserved: %+v", out[0])
	}
	if out[1].Name != "Beta" || out[2].City != "Halifax" {
		t.Errorf("order not preserved: %+v", out)
	}
}

func TestDedupeFAQsByNormalizedQuestion(t *testing.T) {
	in := []FAQ{
		{ID: "FQ_1", Question: "How do I book a reservation?", Answer: "a"},
		{ID: "FQ_2", Question: "How do I book a reservation???", Answer: "b"},
		{ID: "FQ_3", Question: "how   do I book a Reservation", Answer: "c"},
		{ID: "FQ_4", Question: "What about parking?", Answer: "d"},
	}
	out := DedupeFAQs(in)
	if len(out) != 2 {
		t.Fatalf("got %d records; want 2", len(out))
	}
	for _, f := range out {
		if f.Question == "How do I book a reservation?" && f.Answer != "a" {
			t.Errorf("first occurrence should win, got answer %q", f.Answer)
		}
	}
}

// The post-dedup ordering is lexicographic on the ID string, not numeric:
// FQ_1, FQ_10, FQ_11, FQ_2, ... This matches what every export to date has
// contained, so it is preserved deliberately.
func TestDedupeFAQsSortsLexicographically(t *testing.T) {
	in := []FAQ{
		{ID: "FQ_2", Question: "q two"},
		{ID: "FQ_10", Question: "q ten"},
		{ID: "FQ_1", Question: "q one"},
		{ID: "FQ_11", Question: "q eleven"},
	}
	out := DedupeFAQs(in)
	wantOrder := []string{"FQ_1", "FQ_10", "FQ_11", "FQ_2"}
	for i, want := range wantOrder {
		if out[i].ID != want {
			t.Errorf("position %d: got %s; want %s", i, out[i].ID, want)
		}
	}
}

func TestFAQDedupeKey(t *testing.T) {
	a := FAQDedupeKey("How do I book a reservation?")
	b := FAQDedupeKey("How do I book a reservation???")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
	if a != "how do i book a reservation" {
		t.Errorf("unexpected key %q", a)
	}
}

func TestFAQDedupeKeyKeepsAccentedLetters(t *testing.T) {
	if got := FAQDedupeKey("Où est le café?"); got != "où est le café" {
		t.Errorf("accented letters must survive the key: got %q", got)
	}
	a := FAQDedupeKey("Où est le café?")
	b := FAQDedupeKey("où   est le café!!")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
}

func TestApplySectionOverrides(t *testing.T) {
	faqs := []FAQ{
		{ID: "FQ_4", Category: "Booking & Reservations"},
		{ID: "FQ_13", Category: "Payment & Pricing"},
		{ID: "FAQ_999", Category: "General"},
	}
	changed := ApplySectionOverrides(faqs, DefaultSectionOverrides())
	if changed != 2 {
		t.Errorf("changed = %d; want 2", changed)
	}
	if faqs[0].Category != "Reservations" {
		t.Errorf("FQ_4 category = %q; want Reservations", faqs[0].Category)
	}
	if faqs[1].Category != "Payment" {
		t.Errorf("FQ_13 category = %q; want Payment", faqs[1].Category)
	}
	if faqs[2].Category != "General" {
		t.Errorf("unmapped FAQ should keep its category, got %q", faqs[2].Category)
	}
}
