package analyzer

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
)

// Extractor pulls the readable article text and title out of an HTML page.
type Extractor interface {
	Name() string
	Extract(body []byte, pageURL string) (title, text string, err error)
}

// ExtractorChain tries extractors in order and returns the first result
// with usable text.
type ExtractorChain struct {
	extractors []Extractor
}

func NewExtractorChain(extractors ...Extractor) *ExtractorChain {
	if len(extractors) == 0 {
		extractors = []Extractor{
			TrafilaturaExtractor{},
			ReadabilityExtractor{},
			GoqueryExtractor{},
		}
	}
	return &ExtractorChain{extractors: extractors}
}

func (c *ExtractorChain) Extract(body []byte, pageURL string) (string, string, error) {
	var lastErr error
	for _, ex := range c.extractors {
		title, text, err := ex.Extract(body, pageURL)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", ex.Name(), err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			lastErr = fmt.Errorf("%s: no text extracted", ex.Name())
			continue
		}
		return title, text, nil
	}
	return "", "", fmt.Errorf("all extractors failed: %w", lastErr)
}

type TrafilaturaExtractor struct{}

func (TrafilaturaExtractor) Name() string { return "trafilatura" }

func (TrafilaturaExtractor) Extract(body []byte, pageURL string) (string, string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", "", err
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL: parsedURL,
	})
	if err != nil {
		return "", "", err
	}
	return result.Metadata.Title, result.ContentText, nil
}

type ReadabilityExtractor struct{}

func (ReadabilityExtractor) Name() string { return "readability" }

func (ReadabilityExtractor) Extract(body []byte, pageURL string) (string, string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", "", err
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return "", "", err
	}
	return article.Title, article.TextContent, nil
}

// GoqueryExtractor is the last resort: strip script/style and take the body
// text wholesale.
type GoqueryExtractor struct{}

func (GoqueryExtractor) Name() string { return "goquery" }

func (GoqueryExtractor) Extract(body []byte, _ string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, noscript").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	return title, text, nil
}
