package render

import (
	"strings"
	"time"

	"tradecase-backend/internal/strategy"
)

// DocumentKind selects the template for a rendered document.
type DocumentKind string

const (
	KindStrategyPack            DocumentKind = "strategy_pack"
	KindDemandLetter            DocumentKind = "demand_letter"
	KindNoticeToComplete        DocumentKind = "notice_to_complete"
	KindAdjudicationApplication DocumentKind = "adjudication_application"
)

// NormalizeKind maps a raw value onto a known kind.
func NormalizeKind(raw string) (DocumentKind, bool) {
	switch DocumentKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindStrategyPack:
		return KindStrategyPack, true
	case KindDemandLetter:
		return KindDemandLetter, true
	case KindNoticeToComplete:
		return KindNoticeToComplete, true
	case KindAdjudicationApplication:
		return KindAdjudicationApplication, true
	case "":
		return KindStrategyPack, true
	default:
		return "", false
	}
}

// KindTitle returns the cover-page title for a document kind.
func KindTitle(k DocumentKind) string {
	switch k {
	case KindDemandLetter:
		return "Letter of Demand"
	case KindNoticeToComplete:
		return "Notice to Complete"
	case KindAdjudicationApplication:
		return "Adjudication Application"
	default:
		return "Legal Strategy Pack"
	}
}

// Output bundles the rendered binaries for one document.
type Output struct {
	PDF  []byte
	Docx []byte
}

// Renderer renders generated content into branded PDF and DOCX documents.
// Rendering is pure: identical content and kind yield byte-identical output
// apart from the cover date stamp, which is driven by Now.
type Renderer struct {
	Now func() time.Time
}

// Render produces both binary formats for the content.
func (r *Renderer) Render(content strategy.GeneratedContent, kind DocumentKind) (Output, error) {
	pdf, err := r.RenderPDF(content, kind)
	if err != nil {
		return Output{}, err
	}
	docx, err := r.RenderDocx(content, kind)
	if err != nil {
		return Output{}, err
	}
	return Output{PDF: pdf, Docx: docx}, nil
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// section is one numbered block of the document body. At most one of the
// structured payloads is set; plain sections carry paragraphs only.
type section struct {
	number     string
	title      string
	paragraphs []string
	steps      []strategy.ActionStep
	timeline   []strategy.TimelineEntry
	cost       *strategy.CostAssessment
}

// buildSections assembles the fixed-order body. Sections whose content is
// missing are dropped rather than failing the render; numbering stays fixed
// so the remaining sections keep their positions.
func buildSections(content strategy.GeneratedContent, kind DocumentKind) []section {
	out := make([]section, 0, 7)

	out = append(out, section{
		number:     "01",
		title:      "Purpose of This Document",
		paragraphs: []string{purposeText(kind)},
	})

	if msg := strings.TrimSpace(content.WelcomeMessage); msg != "" {
		out = append(out, section{
			number:     "02",
			title:      "Welcome",
			paragraphs: splitParagraphs(msg),
		})
	}

	if analysis := strings.TrimSpace(content.Analysis); analysis != "" {
		out = append(out, section{
			number:     "03",
			title:      "Assessment of Your Position",
			paragraphs: splitParagraphs(analysis),
		})
	}

	if len(content.Steps) > 0 {
		out = append(out, section{
			number: "04",
			title:  "How It Works: Your Action Plan",
			steps:  content.Steps,
		})
	}

	if len(content.Timeline) > 0 {
		out = append(out, section{
			number:   "05",
			title:    "Expected Timeline",
			timeline: content.Timeline,
		})
	}

	if content.Assessment != (strategy.CostAssessment{}) {
		cost := content.Assessment
		out = append(out, section{
			number: "06",
			title:  "Cost Estimate",
			cost:   &cost,
		})
	}

	if len(content.NextSteps) > 0 {
		out = append(out, section{
			number:     "07",
			title:      "Next Steps",
			paragraphs: content.NextSteps,
		})
	}

	return out
}

func purposeText(kind DocumentKind) string {
	switch kind {
	case KindDemandLetter:
		return "This document sets out a formal demand for payment prepared from the facts you supplied. Review it carefully before it is issued to the other party."
	case KindNoticeToComplete:
		return "This document sets out a formal notice requiring completion of contracted works, prepared from the facts you supplied."
	case KindAdjudicationApplication:
		return "This document prepares your application for statutory adjudication of the payment dispute, assembled from the facts you supplied."
	default:
		return "This pack explains where your case stands, the steps we recommend, the timeline you can expect, and what it is likely to cost. It was prepared from the information you provided at intake and will be refined as your case progresses."
	}
}

func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
