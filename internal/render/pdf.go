package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"tradecase-backend/internal/strategy"
)

// Layout constants, A4 in points.
const (
	pageMargin   = 56.0
	contentWidth = 595.28 - 2*pageMargin
	lineHeight   = 16.0
	// Vertical cursor position that triggers a page break before the next block.
	breakAt = 670.0
)

var (
	brandNavy   = [3]int{23, 43, 77}
	brandAmber  = [3]int{214, 128, 16}
	bodyGray    = [3]int{55, 65, 81}
	deadlineRed = [3]int{190, 30, 45}
	tableFill   = [3]int{241, 243, 246}
)

// RenderPDF renders the content into a paginated branded PDF.
func (r *Renderer) RenderPDF(content strategy.GeneratedContent, kind DocumentKind) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	now := r.now()
	doc.SetCreationDate(now)
	doc.SetModificationDate(now)
	doc.SetTitle(KindTitle(kind), true)
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	doc.AliasNbPages("")

	doc.SetFooterFunc(func() {
		doc.SetY(-40)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(128, 128, 128)
		doc.CellFormat(contentWidth/2, 12, "Prepared for tradespeople. Not a substitute for independent legal advice.", "", 0, "L", false, 0, "")
		doc.CellFormat(contentWidth/2, 12, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 0, "R", false, 0, "")
	})

	r.coverPage(doc, kind, now)

	doc.AddPage()
	for _, sec := range buildSections(content, kind) {
		renderPDFSection(doc, sec)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) coverPage(doc *fpdf.Fpdf, kind DocumentKind, now time.Time) {
	doc.AddPage()

	// Brand band across the top third of the cover.
	doc.SetFillColor(brandNavy[0], brandNavy[1], brandNavy[2])
	doc.Rect(0, 0, 595.28, 280, "F")
	doc.SetFillColor(brandAmber[0], brandAmber[1], brandAmber[2])
	doc.Rect(0, 280, 595.28, 8, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 13)
	doc.SetXY(pageMargin, 80)
	doc.CellFormat(contentWidth, 18, "TRADECASE", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 30)
	doc.SetXY(pageMargin, 140)
	doc.MultiCell(contentWidth, 36, KindTitle(kind), "", "L", false)

	doc.SetFont("Helvetica", "", 12)
	doc.SetXY(pageMargin, 230)
	doc.CellFormat(contentWidth, 16, "Prepared on "+now.Format("2 January 2006"), "", 1, "L", false, 0, "")

	doc.SetTextColor(bodyGray[0], bodyGray[1], bodyGray[2])
	doc.SetFont("Helvetica", "", 11)
	doc.SetXY(pageMargin, 340)
	doc.MultiCell(contentWidth, lineHeight,
		"This document was generated from your case intake and reviewed by our team before delivery. Keep it with your case records.",
		"", "L", false)
}

func renderPDFSection(doc *fpdf.Fpdf, sec section) {
	ensureRoom(doc, 90)

	// Circular section-number badge with the heading alongside.
	y := doc.GetY() + 14
	doc.SetFillColor(brandAmber[0], brandAmber[1], brandAmber[2])
	doc.Circle(pageMargin+14, y, 14, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 11)
	doc.SetXY(pageMargin, y-6)
	doc.CellFormat(28, 12, sec.number, "", 0, "C", false, 0, "")

	doc.SetTextColor(brandNavy[0], brandNavy[1], brandNavy[2])
	doc.SetFont("Helvetica", "B", 16)
	doc.SetXY(pageMargin+40, y-9)
	doc.CellFormat(contentWidth-40, 18, sec.title, "", 1, "L", false, 0, "")
	doc.SetY(y + 26)

	doc.SetTextColor(bodyGray[0], bodyGray[1], bodyGray[2])
	doc.SetFont("Helvetica", "", 11)

	switch {
	case len(sec.steps) > 0:
		renderPDFSteps(doc, sec.steps)
	case len(sec.timeline) > 0:
		renderPDFTimeline(doc, sec.timeline)
	case sec.cost != nil:
		renderPDFCost(doc, *sec.cost)
	default:
		for _, p := range sec.paragraphs {
			ensureRoom(doc, lineHeight*2)
			doc.SetX(pageMargin)
			doc.MultiCell(contentWidth, lineHeight, p, "", "L", false)
			doc.Ln(6)
		}
	}
	doc.Ln(18)
}

func renderPDFSteps(doc *fpdf.Fpdf, steps []strategy.ActionStep) {
	for _, step := range steps {
		ensureRoom(doc, lineHeight*4)
		doc.SetFont("Helvetica", "B", 11)
		doc.SetTextColor(brandNavy[0], brandNavy[1], brandNavy[2])
		doc.SetX(pageMargin)
		heading := fmt.Sprintf("Step %d: %s", step.Step, step.Title)
		doc.MultiCell(contentWidth, lineHeight, heading, "", "L", false)

		doc.SetFont("Helvetica", "", 11)
		doc.SetTextColor(bodyGray[0], bodyGray[1], bodyGray[2])
		doc.SetX(pageMargin)
		doc.MultiCell(contentWidth, lineHeight, step.Description, "", "L", false)

		meta := ""
		if step.Timeframe != "" {
			meta = "Timeframe: " + step.Timeframe
		}
		if step.Priority != "" {
			if meta != "" {
				meta += "   "
			}
			meta += "Priority: " + step.Priority
		}
		if meta != "" {
			doc.SetFont("Helvetica", "I", 9)
			doc.SetTextColor(128, 128, 128)
			doc.SetX(pageMargin)
			doc.CellFormat(contentWidth, 12, meta, "", 1, "L", false, 0, "")
		}
		doc.Ln(8)
	}
}

func renderPDFTimeline(doc *fpdf.Fpdf, entries []strategy.TimelineEntry) {
	const labelWidth = 110.0

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(brandNavy[0], brandNavy[1], brandNavy[2])
	doc.SetTextColor(255, 255, 255)
	doc.SetX(pageMargin)
	doc.CellFormat(labelWidth, 20, "When", "", 0, "L", true, 0, "")
	doc.CellFormat(contentWidth-labelWidth, 20, "Milestone", "", 1, "L", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for i, entry := range entries {
		ensureRoom(doc, 20)
		fill := i%2 == 1
		doc.SetFillColor(tableFill[0], tableFill[1], tableFill[2])
		if entry.Deadline {
			doc.SetTextColor(deadlineRed[0], deadlineRed[1], deadlineRed[2])
		} else {
			doc.SetTextColor(bodyGray[0], bodyGray[1], bodyGray[2])
		}
		doc.SetX(pageMargin)
		doc.CellFormat(labelWidth, 18, entry.Label, "", 0, "L", fill, 0, "")
		milestone := entry.Milestone
		if entry.Deadline {
			milestone += " (deadline)"
		}
		doc.CellFormat(contentWidth-labelWidth, 18, milestone, "", 1, "L", fill, 0, "")
	}
}

func renderPDFCost(doc *fpdf.Fpdf, cost strategy.CostAssessment) {
	rows := [][2]string{
		{"Likelihood of success", cost.SuccessProbability},
		{"Estimated cost", cost.EstimatedCost},
	}
	if cost.CostBasis != "" {
		rows = append(rows, [2]string{"Cost basis", cost.CostBasis})
	}

	const labelWidth = 170.0
	doc.SetFont("Helvetica", "", 10)
	for i, row := range rows {
		ensureRoom(doc, 20)
		fill := i%2 == 0
		doc.SetFillColor(tableFill[0], tableFill[1], tableFill[2])
		doc.SetTextColor(brandNavy[0], brandNavy[1], brandNavy[2])
		doc.SetFont("Helvetica", "B", 10)
		doc.SetX(pageMargin)
		doc.CellFormat(labelWidth, 18, row[0], "", 0, "L", fill, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(bodyGray[0], bodyGray[1], bodyGray[2])
		doc.CellFormat(contentWidth-labelWidth, 18, row[1], "", 1, "L", fill, 0, "")
	}
}

// ensureRoom breaks the page when the next block would start past the
// threshold near the bottom of the printable area.
func ensureRoom(doc *fpdf.Fpdf, needed float64) {
	if doc.GetY()+needed > breakAt {
		doc.AddPage()
		doc.SetY(pageMargin)
	}
}
