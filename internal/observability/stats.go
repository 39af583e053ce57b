package observability

import (
	"sync"
	"sync/atomic"
)

// StatsSnapshot is a point-in-time view of the pipeline counters.
type StatsSnapshot struct {
	PagesFetched    uint64            `json:"pages_fetched"`
	UnitsSeen       uint64            `json:"units_seen"`
	UnitsParsed     uint64            `json:"units_parsed"`
	UnitsSkipped    uint64            `json:"units_skipped"`
	RecordsExported uint64            `json:"records_exported"`
	PointsUpserted  uint64            `json:"points_upserted"`
	ErrorsTotal     uint64            `json:"errors_total"`
	UnitsByKind     map[string]uint64 `json:"units_by_kind,omitempty"`
	SkippedByKind   map[string]uint64 `json:"skipped_by_kind,omitempty"`
	ErrorsByType    map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByPart    map[string]uint64 `json:"errors_by_part,omitempty"`
}

var (
	pagesFetched    uint64
	unitsSeen       uint64
	unitsParsed     uint64
	unitsSkipped    uint64
	recordsExported uint64
	pointsUpserted  uint64
	errorsTotal     uint64

	statsMu       sync.Mutex
	unitsByKind   = map[string]uint64{}
	skippedByKind = map[string]uint64{}
	errorsByType  = map[string]uint64{}
	errorsByPart  = map[string]uint64{}
)

func IncPagesFetched(_ string) {
	atomic.AddUint64(&pagesFetched, 1)
}

func IncUnitsSeen(kind string) {
	atomic.AddUint64(&unitsSeen, 1)
	bumpKind(unitsByKind, kind)
}

func IncUnitsParsed(_ string) {
	atomic.AddUint64(&unitsParsed, 1)
}

func IncUnitsSkipped(kind string) {
	atomic.AddUint64(&unitsSkipped, 1)
	bumpKind(skippedByKind, kind)
}

func AddRecordsExported(n int) {
	if n > 0 {
		atomic.AddUint64(&recordsExported, uint64(n))
	}
}

func AddPointsUpserted(n int) {
	if n > 0 {
		atomic.AddUint64(&pointsUpserted, uint64(n))
	}
}

func IncError(errType, part string) {
	if errType == "" {
		errType = "unknown"
	}
	if part == "" {
		part = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByPart[part]++
	statsMu.Unlock()
}

func bumpKind(m map[string]uint64, kind string) {
	if kind == "" {
		kind = "unknown"
	}
	statsMu.Lock()
	m[kind]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	unitsCopy := copyMap(unitsByKind)
	skippedCopy := copyMap(skippedByKind)
	errorsTypeCopy := copyMap(errorsByType)
	errorsPartCopy := copyMap(errorsByPart)
	statsMu.Unlock()

	return StatsSnapshot{
		PagesFetched:    atomic.LoadUint64(&pagesFetched),
		UnitsSeen:       atomic.LoadUint64(&unitsSeen),
		UnitsParsed:     atomic.LoadUint64(&unitsParsed),
		UnitsSkipped:    atomic.LoadUint64(&unitsSkipped),
		RecordsExported: atomic.LoadUint64(&recordsExported),
		PointsUpserted:  atomic.LoadUint64(&pointsUpserted),
		ErrorsTotal:     atomic.LoadUint64(&errorsTotal),
		UnitsByKind:     unitsCopy,
		SkippedByKind:   skippedCopy,
		ErrorsByType:    errorsTypeCopy,
		ErrorsByPart:    errorsPartCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
