package record

import (
	"regexp"
	"sort"
	"strings"
)

// Letters, digits, underscore, and whitespace survive; everything else is
// punctuation for dedup purposes. \p{L}\p{N} rather than \w so accented
// letters are kept, not stripped.
var nonWordSpaceRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// DedupeProperties drops later records sharing an exact (name, city) pair.
// Order-preserving: the first occurrence wins and keeps its position.
func DedupeProperties(in []Property) []Property {
	seen := make(map[string]struct{}, len(in))
	out := make([]Property, 0, len(in))
	for _, p := range in {
		key := p.Name + "\x00" + p.City
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// FAQDedupeKey normalizes a question for duplicate detection: punctuation
// stripped, lowercased, whitespace collapsed.
func FAQDedupeKey(question string) string {
	key := nonWordSpaceRe.ReplaceAllString(strings.ToLower(question), "")
	return strings.Join(strings.Fields(key), " ")
}

// DedupeFAQs drops later records whose normalized question matches an earlier
// one, then sorts by ID. The sort is lexicographic on the ID string, so
// FQ_10 orders before FQ_2; exports have always been written that way and
// consumers key on the ID, not the position.
func DedupeFAQs(in []FAQ) []FAQ {
	seen := make(map[string]struct{}, len(in))
	out := make([]FAQ, 0, len(in))
	for _, f := range in {
		key := FAQDedupeKey(f.Question)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
