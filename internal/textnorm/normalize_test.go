package textnorm

import "testing"

func TestNormalizeBasics(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"tags stripped", "<p>hello <b>world</b></p>", "hello world"},
		{"camel boundary", "bookYour stay", "book Your stay"},
		{"letter digit boundary", "suite5 available", "suite 5 available"},
		{"digit letter boundary", "2BR unit", "2 BR unit"},
		{"whitespace collapse", "  a \t b\n\nc ", "a b c"},
		{"known misjoin", "Ourshort-term rentals", "Our short-term rentals"},
		{"misjoin with casing", "Pleasecontact us", "Please contact us"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()
	inputs := []string{
		"",
		"<div>Explore thebenefits of a 2BR suite</div>",
		"Rating:4.5 stars for The Residences",
		"How do I book a reservation???",
		"plain text with   spacing",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestStripTagsDropsScript(t *testing.T) {
	got := StripTags("<html><head><script>var x=1;</script></head><body>text</body></html>")
	if got != "text" {
		t.Errorf("StripTags = %q; want %q", got, "text")
	}
}

func TestNormalizeCustomFixups(t *testing.T) {
	n := NewWithFixups([]Replacement{{Find: "foobar", Replace: "foo bar"}})
	if got := n.Normalize("say foobar"); got != "say foo bar" {
		t.Errorf("custom fixup: got %q", got)
	}
}
