// Package mathtext splits content text into literal and inline-formula
// segments. Question text, option text and explanations are plain text that
// may embed formulas between `\(` and `\)`; literal spans are HTML-escaped
// and formula spans are handed to a typesetting renderer which must never
// execute them as markup.
package mathtext

import (
	"html"
	"strings"
)

const (
	openDelim  = `\(`
	closeDelim = `\)`

	// DefaultMaxFormulaLen caps how long a single formula fragment may be.
	// Oversized fragments are rejected rather than typeset.
	DefaultMaxFormulaLen = 512

	// RejectionMarker replaces a formula fragment that exceeds the cap.
	RejectionMarker = "[formula too long]"
)

type SegmentKind int

const (
	KindLiteral SegmentKind = iota
	KindFormula
)

type Segment struct {
	Kind SegmentKind
	Text string // delimiters stripped for formula segments
}

// Split cuts text into alternating literal and formula segments. An opener
// without a matching closer is treated as literal text, delimiters included.
func Split(text string) []Segment {
	var segments []Segment
	for len(text) > 0 {
		start := strings.Index(text, openDelim)
		if start < 0 {
			segments = append(segments, Segment{Kind: KindLiteral, Text: text})
			break
		}
		end := strings.Index(text[start+len(openDelim):], closeDelim)
		if end < 0 {
			segments = append(segments, Segment{Kind: KindLiteral, Text: text})
			break
		}
		if start > 0 {
			segments = append(segments, Segment{Kind: KindLiteral, Text: text[:start]})
		}
		formula := text[start+len(openDelim) : start+len(openDelim)+end]
		segments = append(segments, Segment{Kind: KindFormula, Text: strings.TrimSpace(formula)})
		text = text[start+len(openDelim)+end+len(closeDelim):]
	}
	return segments
}

// Renderer typesets a single formula fragment. The returned string is trusted
// output; the input never is.
type Renderer func(formula string) string

// Render walks the segments of text, HTML-escaping literals and passing
// formula fragments through the renderer. Fragments longer than maxFormulaLen
// render as the rejection marker. A maxFormulaLen of zero or less applies
// DefaultMaxFormulaLen.
func Render(text string, render Renderer, maxFormulaLen int) string {
	if maxFormulaLen <= 0 {
		maxFormulaLen = DefaultMaxFormulaLen
	}
	var b strings.Builder
	for _, seg := range Split(text) {
		switch seg.Kind {
		case KindFormula:
			if len(seg.Text) > maxFormulaLen {
				b.WriteString(RejectionMarker)
			} else {
				b.WriteString(render(seg.Text))
			}
		default:
			b.WriteString(html.EscapeString(seg.Text))
		}
	}
	return b.String()
}
