package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gitlab.com/golang-commonmark/markdown"
	"go.uber.org/zap"
)

// Cleaner turns the raw text or markdown of a record into plain text.
type Cleaner struct {
	md     *markdown.Markdown
	logger *zap.Logger
}

type CleanerOption func(*Cleaner)

func WithCleanerLogger(logger *zap.Logger) CleanerOption {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

func NewCleaner(opts ...CleanerOption) *Cleaner {
	ret := &Cleaner{
		md: markdown.New(
			markdown.HTML(true),
			markdown.Typographer(false),
			markdown.Linkify(false),
		),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	return ret
}

// Clean returns a copy of record with FieldCleanedText set to a single
// fragment. Markdown wins over text: it is rendered to HTML and stripped of
// markup. Plain text is only trimmed. A record with neither gets an empty
// fragment.
func (c *Cleaner) Clean(record Record) (Record, error) {
	var body string
	if md := record.String(FieldMarkdown); md != "" {
		txt, err := c.MarkdownText(md)
		if err != nil {
			return nil, err
		}
		body = txt
	} else if txt := record.String(FieldText); txt != "" {
		body = strings.TrimSpace(txt)
	}
	ret := record.Clone()
	ret.SetCleanedText([]string{body})
	return ret, nil
}

// CleanAll cleans every record and keeps those with at least one non blank
// fragment.
func (c *Cleaner) CleanAll(records []Record) ([]Record, error) {
	ret := make([]Record, 0, len(records))
	for _, record := range records {
		cleaned, err := c.Clean(record)
		if err != nil {
			return nil, err
		}
		if !hasContent(cleaned.CleanedText()) {
			c.logger.Debug("dropped record without content", zap.String("url", record.URL()))
			continue
		}
		ret = append(ret, cleaned)
	}
	c.logger.Info("cleaned records",
		zap.Int("input", len(records)),
		zap.Int("kept", len(ret)))
	return ret, nil
}

// MarkdownText renders markdown to HTML and returns its text content.
func (c *Cleaner) MarkdownText(src string) (string, error) {
	html := c.md.RenderToString([]byte(src))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}

func hasContent(fragments []string) bool {
	for _, v := range fragments {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
