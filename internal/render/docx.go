package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"tradecase-backend/internal/strategy"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const docxStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:styleId="Title">
<w:name w:val="Title"/>
<w:rPr><w:b/><w:sz w:val="56"/><w:color w:val="172B4D"/></w:rPr>
</w:style>
<w:style w:type="paragraph" w:styleId="Heading1">
<w:name w:val="heading 1"/>
<w:pPr><w:spacing w:before="360" w:after="160"/></w:pPr>
<w:rPr><w:b/><w:sz w:val="32"/><w:color w:val="172B4D"/></w:rPr>
</w:style>
<w:style w:type="paragraph" w:styleId="Normal">
<w:name w:val="Normal"/>
<w:pPr><w:spacing w:after="160"/></w:pPr>
<w:rPr><w:sz w:val="22"/><w:color w:val="374151"/></w:rPr>
</w:style>
</w:styles>`

// RenderDocx renders the content into a Word document. The zip entries use
// the renderer clock so that two renders of the same content produce the
// same bytes.
func (r *Renderer) RenderDocx(content strategy.GeneratedContent, kind DocumentKind) ([]byte, error) {
	var body strings.Builder
	writeDocxTitle(&body, KindTitle(kind), "Prepared on "+r.now().Format("2 January 2006"))
	for _, sec := range buildSections(content, kind) {
		writeDocxSection(&body, sec)
	}

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + body.String() + `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134"/></w:sectPr>
</w:body>
</w:document>`

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/document.xml", document},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		hdr := &zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: r.now().UTC(),
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("render docx: create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.data)); err != nil {
			return nil, fmt.Errorf("render docx: write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDocxTitle(b *strings.Builder, title, subtitle string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr>` + docxRun(title, runPlain) + `</w:p>`)
	b.WriteString(`<w:p>` + docxRun(subtitle, runMuted) + `</w:p>`)
}

func writeDocxSection(b *strings.Builder, sec section) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr>` + docxRun(sec.number+"  "+sec.title, runPlain) + `</w:p>`)

	switch {
	case len(sec.steps) > 0:
		for _, step := range sec.steps {
			heading := fmt.Sprintf("Step %d: %s", step.Step, step.Title)
			b.WriteString(`<w:p>` + docxRun(heading, runBold) + `</w:p>`)
			b.WriteString(`<w:p>` + docxRun(step.Description, runPlain) + `</w:p>`)
			meta := docxStepMeta(step)
			if meta != "" {
				b.WriteString(`<w:p>` + docxRun(meta, runMuted) + `</w:p>`)
			}
		}
	case len(sec.timeline) > 0:
		for _, entry := range sec.timeline {
			line := entry.Label + ": " + entry.Milestone
			style := runPlain
			if entry.Deadline {
				line += " (deadline)"
				style = runDeadline
			}
			b.WriteString(`<w:p>` + docxRun(line, style) + `</w:p>`)
		}
	case sec.cost != nil:
		b.WriteString(`<w:p>` + docxRun("Likelihood of success: "+sec.cost.SuccessProbability, runPlain) + `</w:p>`)
		b.WriteString(`<w:p>` + docxRun("Estimated cost: "+sec.cost.EstimatedCost, runPlain) + `</w:p>`)
		if sec.cost.CostBasis != "" {
			b.WriteString(`<w:p>` + docxRun("Cost basis: "+sec.cost.CostBasis, runPlain) + `</w:p>`)
		}
	default:
		for _, p := range sec.paragraphs {
			b.WriteString(`<w:p>` + docxRun(p, runPlain) + `</w:p>`)
		}
	}
}

func docxStepMeta(step strategy.ActionStep) string {
	var parts []string
	if step.Timeframe != "" {
		parts = append(parts, "Timeframe: "+step.Timeframe)
	}
	if step.Priority != "" {
		parts = append(parts, "Priority: "+step.Priority)
	}
	return strings.Join(parts, "  ")
}

type runStyle int

const (
	runPlain runStyle = iota
	runBold
	runMuted
	runDeadline
)

func docxRun(text string, style runStyle) string {
	var props string
	switch style {
	case runBold:
		props = `<w:rPr><w:b/></w:rPr>`
	case runMuted:
		props = `<w:rPr><w:i/><w:color w:val="808080"/></w:rPr>`
	case runDeadline:
		props = `<w:rPr><w:color w:val="BE1E2D"/></w:rPr>`
	}
	return `<w:r>` + props + `<w:t xml:space="preserve">` + escapeXML(text) + `</w:t></w:r>`
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer, never for a bytes.Buffer.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
