package scraper

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/premieredata/suitescraper/internal/extract"
	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
	"github.com/premieredata/suitescraper/internal/textnorm"
)

const (
	minQuestionLen = 5
	minAnswerLen   = 10
)

// FAQScraper builds FAQ records from the FAQ page's accordion markup.
type FAQScraper struct {
	baseURL string
	fetcher Fetcher
	norm    *textnorm.Normalizer
	ex      *extract.Extractor
}

func NewFAQScraper(baseURL string, fetcher Fetcher, vocab extract.Vocabulary) *FAQScraper {
	return &FAQScraper{
		baseURL: baseURL,
		fetcher: fetcher,
		norm:    textnorm.New(),
		ex:      extract.New(vocab),
	}
}

// Scrape fetches the FAQ page and extracts deduplicated FAQ records.
func (s *FAQScraper) Scrape(ctx context.Context) ([]record.FAQ, error) {
	html, err := s.fetcher.FetchPage(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("faq scrape: fetch %s: %w", s.baseURL, err)
	}
	return s.ExtractFromHTML(html), nil
}

// ExtractFromHTML parses FAQ page HTML. The primary pass targets the
// div.faq__each structure; if it yields nothing, a looser accordion pass
// runs instead. Results are deduplicated on normalized question text.
func (s *FAQScraper) ExtractFromHTML(html string) []record.FAQ {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		observability.IncError(observability.ErrorParsing, "faq_scraper")
		return nil
	}

	var faqs []record.FAQ
	doc.Find("div.faq__each").Each(func(_ int, unit *goquery.Selection) {
		observability.IncUnitsSeen("faq")
		f, ok := s.parseUnit(unit)
		if !ok {
			observability.IncUnitsSkipped("faq")
			return
		}
		observability.IncUnitsParsed("faq")
		faqs = append(faqs, f)
	})

	if len(faqs) == 0 {
		faqs = s.extractAccordions(doc)
	}

	return record.DedupeFAQs(faqs)
}

// parseUnit reads one div.faq__each unit: question from h3.sub-title, answer
// from the matching <id>_panel div (or any psf_panel inside the unit).
func (s *FAQScraper) parseUnit(unit *goquery.Selection) (record.FAQ, bool) {
	questionElem := unit.Find("h3.sub-title").First()
	if questionElem.Length() == 0 {
		return record.FAQ{}, false
	}
	question := s.norm.Normalize(questionElem.Text())

	unitID := unit.AttrOr("id", "")
	panel := unit.Find("div#" + unitID + "_panel").First()
	if unitID == "" || panel.Length() == 0 {
		panel = unit.Find("div.psf_panel").First()
	}
	if panel.Length() == 0 {
		return record.FAQ{}, false
	}
	answer := s.norm.Normalize(panel.Text())

	return s.buildFAQ(question, answer, s.faqID(unitID, question))
}

// extractAccordions is the fallback pass for pages without faq__each units:
// any div.accordion with a heading and a following psf_panel sibling.
func (s *FAQScraper) extractAccordions(doc *goquery.Document) []record.FAQ {
	var faqs []record.FAQ
	doc.Find("div.accordion").Each(func(i int, acc *goquery.Selection) {
		observability.IncUnitsSeen("faq")
		heading := acc.Find("h3, h4, h5").First()
		if heading.Length() == 0 {
			observability.IncUnitsSkipped("faq")
			return
		}
		question := s.norm.Normalize(heading.Text())

		panel := acc.NextFiltered("div.psf_panel").First()
		if panel.Length() == 0 {
			observability.IncUnitsSkipped("faq")
			return
		}
		answer := s.norm.Normalize(panel.Text())

		f, ok := s.buildFAQ(question, answer, fmt.Sprintf("FAQ_%03d", i+1))
		if !ok {
			observability.IncUnitsSkipped("faq")
			return
		}
		observability.IncUnitsParsed("faq")
		faqs = append(faqs, f)
	})
	return faqs
}

func (s *FAQScraper) buildFAQ(question, answer, id string) (record.FAQ, bool) {
	if utf8.RuneCountInString(question) < minQuestionLen || utf8.RuneCountInString(answer) < minAnswerLen {
		return record.FAQ{}, false
	}
	combined := question + " " + answer
	return record.FAQ{
		ID:        id,
		Question:  question,
		Answer:    answer,
		Category:  s.ex.Category(question, answer),
		Tags:      s.ex.Tags(combined),
		SourceURL: s.baseURL,
	}, true
}

// faqID uppercases the unit's anchor id; units without one get a
// hash-derived numeric id.
func (s *FAQScraper) faqID(unitID, question string) string {
	if unitID != "" {
		return strings.ToUpper(unitID)
	}
	return fmt.Sprintf("FAQ_%03d", record.HashID(question)%1000)
}
