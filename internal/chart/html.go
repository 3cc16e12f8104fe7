package chart

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// Page carries the page-level text of the dashboard.
type Page struct {
	Title       string
	RunID       string
	GeneratedAt time.Time
}

type htmlSection struct {
	Title   string
	Image   template.URL
	Preview *domain.Preview
	Error   string
	Skipped int
}

// HTMLSink collects sections and writes one self-contained HTML page on Close. Charts
// are embedded as base64 PNG images.
type HTMLSink struct {
	w        io.Writer
	page     Page
	logger   *zap.Logger
	render   func(domain.Section) ([]byte, error)
	sections []htmlSection
}

func NewHTMLSink(w io.Writer, page Page, logger *zap.Logger) *HTMLSink {
	return &HTMLSink{
		w:      w,
		page:   page,
		logger: logger,
		render: RenderPNG,
	}
}

// Write adds a section to the page. When the chart cannot be drawn the section shows an
// error notice instead and the drawing error is returned.
func (s *HTMLSink) Write(sec domain.Section) error {
	hs := htmlSection{Title: sec.Title, Preview: sec.Preview}
	switch {
	case sec.Err != nil:
		hs.Error = sec.Err.Error()
	case sec.Preview != nil:
	default:
		img, err := s.render(sec)
		if err != nil {
			hs.Error = err.Error()
			s.sections = append(s.sections, hs)
			return err
		}
		hs.Image = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img))
		hs.Skipped = sec.Result.Skipped
	}
	s.sections = append(s.sections, hs)
	return nil
}

// Close renders the page to the underlying writer.
func (s *HTMLSink) Close() error {
	data := struct {
		Page
		Generated string
		Sections  []htmlSection
	}{
		Page:      s.page,
		Generated: s.page.GeneratedAt.Format(time.RFC1123),
		Sections:  s.sections,
	}
	if err := pageTemplate.Execute(s.w, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	s.logger.Debug("html page written", zap.Int("sections", len(s.sections)))
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))
