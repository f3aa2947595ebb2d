package document

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Directory record fields
const (
	FieldName  = "name"
	FieldEmail = "email"
)

// FieldDescription holds the meta description of a scraped page
const FieldDescription = "description"

var multipleBlankLines = regexp.MustCompile(`\r?\n{2,}`)

// Scraper turns HTML into records.
type Scraper struct {
	ScraperConfig
	fetched *atomic.Int64
	failed  *atomic.Int64
}

func NewScraper(opts ...ScraperOption) *Scraper {
	ret := &Scraper{
		fetched: atomic.NewInt64(0),
		failed:  atomic.NewInt64(0),
	}
	for _, opt := range opts {
		opt(&ret.ScraperConfig)
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.timeout == 0 {
		ret.timeout = DefaultTimeout
	}
	if ret.maxContentLength == 0 {
		ret.maxContentLength = DefaultMaxContentLength
	}
	if ret.concurrency < 1 {
		ret.concurrency = DefaultConcurrency
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: ret.timeout}
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	return ret
}

// Directory extracts the people listed in staff directory markup. Every
// div.fsConstituentItem becomes one record with name, title and email.
func (s *Scraper) Directory(r io.Reader) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	var ret []Record
	doc.Find("div.fsConstituentItem").Each(func(_ int, item *goquery.Selection) {
		title := strings.TrimSpace(item.Find("div.fsTitles").First().Text())
		title = strings.TrimSpace(strings.ReplaceAll(title, "Title:", ""))
		ret = append(ret, Record{
			FieldName:  strings.TrimSpace(item.Find("h3.fsFullName").First().Text()),
			FieldTitle: title,
			FieldEmail: strings.TrimSpace(item.Find("div.fsEmail a").First().Text()),
		})
	})
	s.logger.Debug("parsed directory", zap.Int("entries", len(ret)))
	return ret, nil
}

// Page converts a HTML page into a record holding its main content as
// markdown. link is stored as the record url and, when absolute, used to
// resolve relative links.
func (s *Scraper) Page(link string, r io.Reader) (Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	var opts []converter.ConvertOptionFunc
	if parsedURL, err := url.Parse(link); err == nil && parsedURL.Host != "" {
		opts = append(opts, converter.WithDomain(fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)))
	}
	ret := Record{
		FieldURL:   link,
		FieldTitle: strings.TrimSpace(doc.Find("head title").First().Text()),
	}
	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok && desc != "" {
		ret[FieldDescription] = desc
	}
	md, err := htmltomarkdown.ConvertString(extractMainContent(doc), opts...)
	if err != nil {
		return nil, err
	}
	ret[FieldMarkdown] = cleanMarkdownContent(md)
	return ret, nil
}

// extractMainContent extracts the main content from the webpage using custom heuristics
func extractMainContent(doc *goquery.Document) string {
	for _, tag := range []string{"script", "style", "nav", "header", "footer"} {
		doc.Find(tag).Remove()
	}
	contentCandidates := []string{
		"main",
		"#content, #main",
		".content, .main",
		"article",
		"body",
	}
	for _, selector := range contentCandidates {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			if txt, err := sel.First().Html(); err == nil {
				return txt
			}
		}
	}
	txt, _ := doc.Html()
	return txt
}

// Cleans up the markdown content by removing excessive whitespace and normalizing formatting
func cleanMarkdownContent(content string) string {
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	content = strings.Join(lines, "\n")
	// Ensure content ends with single newline
	return strings.TrimSpace(content) + "\n"
}
