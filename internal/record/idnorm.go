package record

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// Source IDs arrive in several shapes: "faq_001", "FQ_12", "prop_7", bare
// numbers, arbitrary strings, or nothing at all. Vector stores want plain
// non-negative integers.
var idPrefixes = []string{"faq_", "FQ_", "prop_"}

// NormalizeID converts a heterogeneous source identifier into a stable
// non-negative integer. It is total: any input produces a deterministic
// result, never an error.
//
//   - nil          -> fallbackIndex
//   - "faq_007"    -> 7 (known prefix stripped, digits parsed)
//   - "42" / 42    -> 42
//   - anything else -> FNV-1a-64 of the string form, mod 2^63
//
// The hash is pinned to FNV-1a over UTF-8 bytes so fallback IDs reproduce
// across runs and implementations.
func NormalizeID(raw any, fallbackIndex int) int64 {
	switch v := raw.(type) {
	case nil:
		return int64(fallbackIndex)
	case int:
		return nonNegative(int64(v))
	case int64:
		return nonNegative(v)
	case float64:
		// JSON numbers decode as float64.
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return nonNegative(int64(v))
		}
		return HashID(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		for _, prefix := range idPrefixes {
			if strings.HasPrefix(v, prefix) {
				if n, err := strconv.ParseInt(strings.TrimPrefix(v, prefix), 10, 64); err == nil {
					return nonNegative(n)
				}
				return HashID(v)
			}
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return nonNegative(n)
		}
		return HashID(v)
	default:
		return HashID(fmt.Sprintf("%v", v))
	}
}

// HashID is the pinned fallback hash: FNV-1a-64 over UTF-8 bytes, reduced
// mod 2^63 to stay non-negative in an int64.
func HashID(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64() & math.MaxInt64)
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
