package observability

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/premieredata/suitescraper/internal/httpx"
)

func TestClassifyFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ErrorUnknown},
		{"rate limited", &httpx.FetchError{Status: http.StatusTooManyRequests}, ErrorRateLimit},
		{"server error", &httpx.FetchError{Status: http.StatusBadGateway}, ErrorNetwork},
		{"wrapped fetch error", fmt.Errorf("scrape: %w", &httpx.FetchError{Status: 503}), ErrorNetwork},
		{"plain error", errors.New("boom"), ErrorUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFetchError(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyScrapeError(t *testing.T) {
	if got := ClassifyScrapeError(errors.New("failed to parse response")); got != ErrorParsing {
		t.Errorf("parse error classified as %q", got)
	}
	if got := ClassifyScrapeError(errors.New("connection reset")); got != ErrorNetwork {
		t.Errorf("network error classified as %q", got)
	}
}

func TestCountersAccumulate(t *testing.T) {
	before := Snapshot()

	IncPagesFetched("property")
	IncUnitsSeen("faq")
	IncUnitsParsed("faq")
	IncUnitsSkipped("faq")
	AddRecordsExported(3)
	AddPointsUpserted(2)
	IncError(ErrorNetwork, "faq_scraper")

	after := Snapshot()
	if after.PagesFetched != before.PagesFetched+1 {
		t.Error("pages_fetched not incremented")
	}
	if after.UnitsSeen != before.UnitsSeen+1 || after.UnitsParsed != before.UnitsParsed+1 || after.UnitsSkipped != before.UnitsSkipped+1 {
		t.Error("unit counters not incremented")
	}
	if after.RecordsExported != before.RecordsExported+3 {
		t.Error("records_exported not added")
	}
	if after.PointsUpserted != before.PointsUpserted+2 {
		t.Error("points_upserted not added")
	}
	if after.ErrorsByType[ErrorNetwork] != before.ErrorsByType[ErrorNetwork]+1 {
		t.Error("errors_by_type not incremented")
	}
	if after.ErrorsByPart["faq_scraper"] != before.ErrorsByPart["faq_scraper"]+1 {
		t.Error("errors_by_part not incremented")
	}

	// Snapshot maps are copies; mutating one must not leak back.
	after.UnitsByKind["faq"] = 999
	if Snapshot().UnitsByKind["faq"] == 999 {
		t.Error("snapshot map aliases internal state")
	}
}
