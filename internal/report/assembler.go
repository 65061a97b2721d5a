package report

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"gosurvey/internal/logging"
	"gosurvey/internal/metrics"
	"gosurvey/ports"
)

// Ellipsis marks text that was cut short.
const Ellipsis = "..."

// Band is the accepted length range of an insight fragment, in characters.
type Band struct {
	Min int
	Max int
}

// DefaultBand is the 100-150 character range insight fragments aim for.
var DefaultBand = Band{Min: 100, Max: 150}

// Fits reports whether text is no longer than the band allows.
func (b Band) Fits(text string) bool {
	return utf8.RuneCountInString(text) <= b.Max
}

// Truncate cuts text to at most band.Max characters, ellipsis included. The
// cut lands on the last word boundary past band.Min when there is one.
func Truncate(text string, band Band) string {
	text = strings.TrimSpace(text)
	if band.Fits(text) {
		return text
	}
	runes := []rune(text)
	limit := band.Max - len(Ellipsis)
	if limit <= 0 {
		return Ellipsis[:max(band.Max, 0)]
	}

	cut := limit
	for i := limit; i > band.Min && i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	head := strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	if head == "" {
		head = string(runes[:limit])
	}
	return head + Ellipsis
}

// Assembler turns insight paragraphs into fragments that fit a Band, asking a
// Summarizer first and truncating when it cannot help.
type Assembler struct {
	summarizer ports.Summarizer
	band       Band
	logger     *logging.Logger
}

// NewAssembler builds an Assembler. A nil summarizer means every long
// paragraph is truncated.
func NewAssembler(summarizer ports.Summarizer, band Band) *Assembler {
	if band.Max <= 0 {
		band = DefaultBand
	}
	return &Assembler{summarizer: summarizer, band: band, logger: logging.Default}
}

// Band returns the length range the assembler enforces.
func (a *Assembler) Band() Band { return a.band }

// Shorten returns text unchanged when it already fits, otherwise the
// summarizer's rendition when it is non-empty and fits, otherwise a truncation.
// It never fails.
func (a *Assembler) Shorten(ctx context.Context, dimension, text string) string {
	text = strings.TrimSpace(text)
	if a.band.Fits(text) {
		metrics.SummarizerResults.WithLabelValues(dimension, metrics.SummaryFits).Inc()
		return text
	}

	if a.summarizer != nil {
		summary, err := a.summarizer.Summarize(ctx, text, a.band.Max)
		summary = strings.TrimSpace(summary)
		switch {
		case err != nil:
			a.logger.Warn("[Assembler] summarizer failed for %s: %v", dimension, err)
			metrics.SummarizerResults.WithLabelValues(dimension, metrics.SummaryFailed).Inc()
		case summary == "" || !a.band.Fits(summary):
			a.logger.Debug("[Assembler] summary for %s rejected (%d chars)", dimension, utf8.RuneCountInString(summary))
			metrics.SummarizerResults.WithLabelValues(dimension, metrics.SummaryRejected).Inc()
		default:
			metrics.SummarizerResults.WithLabelValues(dimension, metrics.SummaryAccepted).Inc()
			return summary
		}
	}

	metrics.SummarizerResults.WithLabelValues(dimension, metrics.SummaryTruncated).Inc()
	return Truncate(text, a.band)
}
