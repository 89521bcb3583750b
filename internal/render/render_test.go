package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"tradecase-backend/internal/strategy"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func sampleContent() strategy.GeneratedContent {
	return strategy.GeneratedContent{
		WelcomeMessage: "Thank you for trusting us with your payment_dispute case.\n\nWe have reviewed the details you provided.",
		Analysis:       "The unpaid invoice appears enforceable under the contract terms you supplied.",
		Steps: []strategy.ActionStep{
			{Step: 1, Title: "Gather your records", Description: "Collect the contract, invoices and all correspondence.", Timeframe: "2 days", Priority: "high"},
			{Step: 2, Title: "Issue a letter of demand", Description: "We prepare and send a formal demand for payment.", Timeframe: "5 days", Priority: "high"},
		},
		Timeline: []strategy.TimelineEntry{
			{Label: "Day 1", Milestone: "Case opened and documents collected"},
			{Label: "Day 7", Milestone: "Response to demand due", Deadline: true},
			{Label: "Day 14", Milestone: "Escalation decision"},
		},
		Assessment: strategy.CostAssessment{
			SuccessProbability: "70-80%",
			EstimatedCost:      "$1,500 - $3,000",
			CostBasis:          "Fixed fee for the demand stage",
		},
		NextSteps: []string{"Upload your signed contract", "Confirm the disputed amount"},
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := &Renderer{Now: fixedClock}

	first, err := r.Render(sampleContent(), KindStrategyPack)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := r.Render(sampleContent(), KindStrategyPack)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if !bytes.Equal(first.PDF, second.PDF) {
		t.Error("expected identical PDF bytes for identical content")
	}
	if !bytes.Equal(first.Docx, second.Docx) {
		t.Error("expected identical DOCX bytes for identical content")
	}
}

func TestRenderPDFHeader(t *testing.T) {
	r := &Renderer{Now: fixedClock}
	out, err := r.RenderPDF(sampleContent(), KindDemandLetter)
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("expected PDF magic header, got %q", out[:min(8, len(out))])
	}
}

func TestRenderDocxIsValidPackage(t *testing.T) {
	r := &Renderer{Now: fixedClock}
	out, err := r.RenderDocx(sampleContent(), KindStrategyPack)
	if err != nil {
		t.Fatalf("render docx: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("output is not a readable zip: %v", err)
	}

	want := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/document.xml":            false,
		"word/_rels/document.xml.rels": false,
		"word/styles.xml":              false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("missing package part %s", name)
		}
	}
}

func TestRenderDocxBodyContent(t *testing.T) {
	r := &Renderer{Now: fixedClock}
	out, err := r.RenderDocx(sampleContent(), KindStrategyPack)
	if err != nil {
		t.Fatalf("render docx: %v", err)
	}
	doc := docxDocumentXML(t, out)

	for _, want := range []string{
		"Legal Strategy Pack",
		"Prepared on 10 March 2025",
		"Assessment of Your Position",
		"Step 1: Gather your records",
		"Day 7: Response to demand due (deadline)",
		"Likelihood of success: 70-80%",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}

	// Timeline order must match the content order.
	day1 := strings.Index(doc, "Day 1:")
	day7 := strings.Index(doc, "Day 7:")
	day14 := strings.Index(doc, "Day 14:")
	if day1 < 0 || day7 < 0 || day14 < 0 || !(day1 < day7 && day7 < day14) {
		t.Errorf("timeline entries out of order: %d, %d, %d", day1, day7, day14)
	}
}

func TestBuildSectionsDropsEmpty(t *testing.T) {
	content := strategy.GeneratedContent{
		WelcomeMessage: "Welcome.",
		Analysis:       "Analysis.",
	}
	secs := buildSections(content, KindStrategyPack)

	numbers := make([]string, 0, len(secs))
	for _, s := range secs {
		numbers = append(numbers, s.number)
	}
	want := []string{"01", "02", "03"}
	if len(numbers) != len(want) {
		t.Fatalf("expected sections %v, got %v", want, numbers)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Fatalf("expected sections %v, got %v", want, numbers)
		}
	}
}

func TestBuildSectionsKeepsFixedNumbering(t *testing.T) {
	content := sampleContent()
	content.WelcomeMessage = "Welcome."
	content.Analysis = ""
	secs := buildSections(content, KindStrategyPack)

	for _, s := range secs {
		if s.title == "Expected Timeline" && s.number != "05" {
			t.Errorf("timeline section renumbered to %s", s.number)
		}
		if s.title == "Cost Estimate" && s.number != "06" {
			t.Errorf("cost section renumbered to %s", s.number)
		}
	}
}

func TestNormalizeKind(t *testing.T) {
	cases := []struct {
		raw  string
		want DocumentKind
		ok   bool
	}{
		{"", KindStrategyPack, true},
		{"strategy_pack", KindStrategyPack, true},
		{" Demand_Letter ", KindDemandLetter, true},
		{"notice_to_complete", KindNoticeToComplete, true},
		{"adjudication_application", KindAdjudicationApplication, true},
		{"memo", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeKind(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeKind(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func docxDocumentXML(t *testing.T, pkg []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		t.Fatalf("open docx: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return string(data)
	}
	t.Fatal("word/document.xml not found")
	return ""
}
