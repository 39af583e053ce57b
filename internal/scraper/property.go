package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/premieredata/suitescraper/internal/extract"
	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
	"github.com/premieredata/suitescraper/internal/textnorm"
)

var (
	propertyHrefRe = regexp.MustCompile(`/furnished-apartments/[^/]+/[^/]+/`)
	decimalTokenRe = regexp.MustCompile(`\d+\.\d+`)
)

// PropertyScraper builds property records from the find-your-match listing
// page.
type PropertyScraper struct {
	baseURL string
	fetcher Fetcher
	norm    *textnorm.Normalizer
	ex      *extract.Extractor
	titler  cases.Caser
}

func NewPropertyScraper(baseURL string, fetcher Fetcher, vocab extract.Vocabulary) *PropertyScraper {
	return &PropertyScraper{
		baseURL: baseURL,
		fetcher: fetcher,
		norm:    textnorm.New(),
		ex:      extract.New(vocab),
		titler:  cases.Title(language.English),
	}
}

// Scrape fetches the listing page and extracts deduplicated property records.
// Fetch failures are returned to the caller; per-unit parse misses are not.
func (s *PropertyScraper) Scrape(ctx context.Context) ([]record.Property, error) {
	html, err := s.fetcher.FetchPage(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("property scrape: fetch %s: %w", s.baseURL, err)
	}
	return s.ExtractFromHTML(html), nil
}

// ExtractFromHTML parses listing HTML and returns one record per unique
// property URL, deduplicated on (name, city).
func (s *PropertyScraper) ExtractFromHTML(html string) []record.Property {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		observability.IncError(observability.ErrorParsing, "property_scraper")
		return nil
	}

	// First anchor per unique property URL, in document order. Document
	// order matters: ratings are assigned to units positionally below.
	var urls []string
	anchors := make(map[string]*goquery.Selection)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !propertyHrefRe.MatchString(href) {
			return
		}
		if _, seen := anchors[href]; seen {
			return
		}
		anchors[href] = a
		urls = append(urls, href)
	})

	pageText := s.norm.Normalize(doc.Text())
	allRatings := s.ex.AllRatings(doc.Text())

	var properties []record.Property
	for i, href := range urls {
		observability.IncUnitsSeen("property")
		p, ok := s.buildProperty(href, anchors[href], pageText, allRatings, i)
		if !ok {
			observability.IncUnitsSkipped("property")
			continue
		}
		observability.IncUnitsParsed("property")
		properties = append(properties, p)
	}

	return record.DedupeProperties(properties)
}

// buildProperty assembles one record from a property anchor. Identifying
// fields come from the URL slug; everything else is merged from the unit's
// container and the full page text (container wins for scalar fields).
func (s *PropertyScraper) buildProperty(href string, anchor *goquery.Selection, pageText string, allRatings []float64, index int) (record.Property, bool) {
	name, city, ok := s.parseSlug(href)
	if !ok {
		return record.Property{}, false
	}

	container := s.containerFor(anchor)
	containerText := s.norm.Normalize(container.Text())

	// Container first, page-wide fallback for single-valued fields; union
	// (wider recall) for the keyword sets.
	merged := containerText + " " + pageText

	bedrooms := s.ex.Bedrooms(containerText)
	if bedrooms == nil {
		bedrooms = s.ex.Bedrooms(pageText)
	}
	petFriendly := s.ex.PetFriendly(containerText) || s.ex.PetFriendly(pageText)

	rating := s.ratingFor(allRatings, index)

	description := name + " " + city
	if rating != nil {
		description = fmt.Sprintf("%s %v", description, *rating)
	}

	return record.Property{
		ID:            record.PropertyID(name),
		Name:          name,
		City:          city,
		Rating:        rating,
		RoomType:      s.ex.RoomType(containerText),
		Amenities:     s.ex.Amenities(merged),
		SuiteFeatures: s.ex.SuiteFeatures(merged),
		Description:   description,
		URL:           s.absoluteURL(href),
		ImageURL:      imageURL(container),
		PetFriendly:   petFriendly,
		Bedrooms:      bedrooms,
		BuildingType:  "Apartment Building",
	}, true
}

// parseSlug extracts (name, city) from /furnished-apartments/<city>/<name>/.
func (s *PropertyScraper) parseSlug(href string) (name, city string, ok bool) {
	parts := strings.Split(strings.Trim(href, "/"), "/")
	if len(parts) < 3 {
		return "", "", false
	}
	city = s.titler.String(strings.ReplaceAll(parts[len(parts)-2], "-", " "))
	name = s.titler.String(strings.ReplaceAll(strings.ReplaceAll(parts[len(parts)-1], "-", " "), "_", " "))
	if name == "" || city == "" {
		return "", "", false
	}
	return name, city, true
}

// containerFor walks up from the anchor to the nearest block container, then
// one level further if that container carries no rating-like token.
func (s *PropertyScraper) containerFor(anchor *goquery.Selection) *goquery.Selection {
	container := anchor.Closest("div, article, section")
	if container.Length() == 0 {
		return anchor
	}
	if !decimalTokenRe.MatchString(container.Text()) {
		if larger := container.Parent().Closest("div, article, section, main"); larger.Length() > 0 {
			return larger
		}
	}
	return container
}

// ratingFor assigns page ratings to units by position. This assumes ratings
// occur in the page text in the same order as the property anchors, which is
// not verified; a layout change can misassign ratings.
func (s *PropertyScraper) ratingFor(allRatings []float64, index int) *float64 {
	if index >= len(allRatings) {
		return nil
	}
	r := allRatings[index]
	return &r
}

func (s *PropertyScraper) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return "https://premieresuites.com" + href
}

func imageURL(container *goquery.Selection) string {
	src, _ := container.Find("img").First().Attr("src")
	return src
}
