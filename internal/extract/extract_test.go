package extract

import "testing"

func newExtractor() *Extractor { return New(DefaultVocabulary()) }

func TestRating(t *testing.T) {
	e := newExtractor()

	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{"Rating: 4.5", 4.5, true},
		{"4.8/5 from 120 guests", 4.8, true},
		{"rated 3.9 stars", 3.9, true},
		{"scored 6.5 overall", 0, false},
		{"0.5 is too low", 0, false},
		{"no numbers here", 0, false},
		{"6.7 then a valid 4.2 later", 4.2, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		got := e.Rating(tt.text)
		if tt.ok {
			if got == nil || *got != tt.want {
				t.Errorf("Rating(%q) = %v; want %v", tt.text, got, tt.want)
			}
		} else if got != nil {
			t.Errorf("Rating(%q) = %v; want nil", tt.text, *got)
		}
	}
}

func TestAllRatingsKeepsDocumentOrder(t *testing.T) {
	e := newExtractor()
	got := e.AllRatings("first 4.9 then 8.2 skipped then 3.1 and 1.0")
	want := []float64{4.9, 3.1, 1.0}
	if len(got) != len(want) {
		t.Fatalf("AllRatings len = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllRatings[%d] = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestBedrooms(t *testing.T) {
	e := newExtractor()

	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"a lovely 5 bedroom suite downtown", 5, true},
		{"2BR with parking", 2, true},
		{"suite with 3 bedrooms", 3, true},
		{"1 bed available", 1, true},
		{"studio apartment", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got := e.Bedrooms(tt.text)
		if tt.ok {
			if got == nil || *got != tt.want {
				t.Errorf("Bedrooms(%q) = %v; want %d", tt.text, got, tt.want)
			}
		} else if got != nil {
			t.Errorf("Bedrooms(%q) = %d; want nil", tt.text, *got)
		}
	}
}

func TestPetFriendly(t *testing.T) {
	e := newExtractor()

	tests := []struct {
		text string
		want bool
	}{
		{"This building is Pet Friendly", true},
		{"pets allowed on request", true},
		{"Dogs Allowed with deposit", true},
		{"no animals mentioned", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := e.PetFriendly(tt.text); got != tt.want {
			t.Errorf("PetFriendly(%q) = %v; want %v", tt.text, got, tt.want)
		}
	}
}

func TestAmenitiesSubstringMatch(t *testing.T) {
	e := newExtractor()
	got := e.Amenities("Free WiFi, a gym and in-suite laundry; balcony views")
	want := map[string]bool{
		"Gym": true, "Laundry": true, "WiFi": true, "Free WiFi": true,
		"In-suite Laundry": true, "Balcony": true,
	}
	if len(got) != len(want) {
		t.Fatalf("Amenities = %v; want %d keywords", got, len(want))
	}
	for _, a := range got {
		if !want[a] {
			t.Errorf("unexpected amenity %q", a)
		}
	}
}

func TestAmenitiesEmpty(t *testing.T) {
	e := newExtractor()
	if got := e.Amenities("nothing relevant"); got != nil {
		t.Errorf("Amenities = %v; want nil", got)
	}
}

func TestRoomType(t *testing.T) {
	e := newExtractor()

	tests := []struct {
		text string
		want string
	}{
		{"full kitchen with appliances", "Kitchen"},
		{"spacious living room", "Living Room"},
		{"separate dining area", "Dining Room"},
		{"a standard unit", "Suite"},
		// Rule order: kitchen is checked before living room.
		{"living room next to the kitchen", "Kitchen"},
	}

	for _, tt := range tests {
		if got := e.RoomType(tt.text); got != tt.want {
			t.Errorf("RoomType(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}

func TestCategoryRuleOrder(t *testing.T) {
	e := newExtractor()

	tests := []struct {
		question string
		answer   string
		want     string
	}{
		// Booking keywords are checked before payment keywords, so a text
		// matching both classifies as booking.
		{"How do I cancel my booking and get a refund?", "", "Booking & Reservations"},
		{"What payment methods do you accept?", "We take credit cards.", "Payment & Pricing"},
		{"Are dogs welcome?", "Yes, with a pet agreement.", "Pet Policies"},
		{"Is smoking permitted?", "No, smoking is prohibited.", "Rules & Regulations"},
		{"How do I log into the WI-FI?", "Use the code in your welcome kit.", "General"},
		{"Hello", "World", "General"},
	}

	for _, tt := range tests {
		if got := e.Category(tt.question, tt.answer); got != tt.want {
			t.Errorf("Category(%q) = %q; want %q", tt.question, got, tt.want)
		}
	}
}

func TestTagsReturnsAllHits(t *testing.T) {
	e := newExtractor()
	got := e.Tags("booking a furnished unit with parking near the gym")
	want := map[string]bool{"booking": true, "furnished": true, "parking": true, "gym": true}
	for _, tag := range got {
		if !want[tag] {
			t.Errorf("unexpected tag %q", tag)
		}
		delete(want, tag)
	}
	if len(want) != 0 {
		t.Errorf("missing tags: %v", want)
	}
}

func TestExtractorsNeverPanicOnGarbage(t *testing.T) {
	e := newExtractor()
	garbage := []string{"", "\x00\xff", "<<<>>>", "9999999999999999999999.9"}
	for _, g := range garbage {
		_ = e.Rating(g)
		_ = e.Bedrooms(g)
		_ = e.PetFriendly(g)
		_ = e.Amenities(g)
		_ = e.SuiteFeatures(g)
		_ = e.RoomType(g)
		_ = e.Category(g, g)
		_ = e.Tags(g)
	}
}
