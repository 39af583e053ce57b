package record

// The FAQ page renders its entries under section headings that the keyword
// classifier cannot see (headings live outside the unit markup). This static
// id -> section table mirrors the page structure and takes precedence over
// the keyword-derived category.
var defaultSectionOverrides = map[string]string{
	"FQ_1": "About Us",
	"FQ_2": "About Us",
	"FQ_3": "About Us",

	"FQ_4":  "Reservations",
	"FQ_5":  "Reservations",
	"FQ_6":  "Reservations",
	"FQ_7":  "Reservations",
	"FQ_8":  "Reservations",
	"FQ_9":  "Reservations",
	"FQ_10": "Reservations",
	"FQ_11": "Reservations",
	"FQ_12": "Reservations",

	"FQ_13": "Payment",
	"FQ_14": "Payment",
	"FQ_15": "Payment",
	"FQ_16": "Payment",

	"FQ_17": "Guest Services",
	"FQ_18": "Guest Services",
	"FQ_19": "Guest Services",
	"FQ_20": "Guest Services",
	"FQ_21": "Guest Services",
	"FQ_22": "Guest Services",
	"FQ_23": "Guest Services",
	"FQ_24": "Guest Services",
	"FQ_25": "Guest Services",
	"FQ_26": "Guest Services",
	"FQ_27": "Guest Services",

	"FQ_28": "Rules and Regulations",
	"FQ_29": "Rules and Regulations",
	"FQ_30": "Rules and Regulations",
}

// DefaultSectionOverrides returns a copy of the built-in id -> section table.
func DefaultSectionOverrides() map[string]string {
	out := make(map[string]string, len(defaultSectionOverrides))
	for k, v := range defaultSectionOverrides {
		out[k] = v
	}
	return out
}

// ApplySectionOverrides replaces each FAQ's category with the section mapped
// to its ID, when one exists. FAQs without an override keep their
// keyword-derived category. Returns the number of records changed.
func ApplySectionOverrides(faqs []FAQ, overrides map[string]string) int {
	changed := 0
	for i := range faqs {
		section, ok := overrides[faqs[i].ID]
		if !ok || faqs[i].Category == section {
			continue
		}
		faqs[i].Category = section
		changed++
	}
	return changed
}
