package rendering

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/jonathan/intelliresume/internal/types"
)

// Font sizes are in points, distances in twentieths of a point.
const (
	sizeName        = 18
	sizeHeading     = 14
	sizeEntryTitle  = 12
	sizeBody        = 11
	sizeContact     = 10
	pageWidth       = 12240
	pageHeight      = 15840
	pageMargin      = 1080 // 0.75in
	rightTabStop    = pageWidth - 2*pageMargin
	bulletIndent    = 360
	spacingAfterHdr = 100
	spacingSection  = 200
	spacingEntry    = 150
)

const corePropsPath = "docProps/core.xml"

// RenderDOCX builds a Word document for doc.
func RenderDOCX(doc *types.ResumeDocument) ([]byte, error) {
	if doc == nil {
		return nil, &RenderError{Format: "docx", Message: "no resume to render"}
	}

	rd, err := godocx.NewDocument()
	if err != nil {
		return nil, &RenderError{Format: "docx", Message: "failed to open document template", Cause: err}
	}

	layoutDOCX(rd, doc)
	setPageLayout(rd)
	setTitle(rd, doc.Contact.Name)

	var buf bytes.Buffer
	if err := rd.Write(&buf); err != nil {
		return nil, &RenderError{Format: "docx", Message: "failed to write document", Cause: err}
	}
	return buf.Bytes(), nil
}

// layoutDOCX mirrors the section order of the HTML templates.
func layoutDOCX(rd *docx.RootDoc, doc *types.ResumeDocument) {
	name := rd.AddEmptyParagraph()
	name.Justification(stypes.JustificationCenter)
	name.AddText(doc.Contact.Name).Bold(true).Size(sizeName)

	contact := rd.AddEmptyParagraph()
	contact.Justification(stypes.JustificationCenter)
	spaceAfter(contact, spacingSection)
	contact.AddText(strings.Join(ContactParts(doc.Contact), " | ")).Size(sizeContact)

	if doc.Summary != "" {
		heading(rd, "Summary")
		p := rd.AddEmptyParagraph()
		spaceAfter(p, spacingSection)
		p.AddText(doc.Summary).Size(sizeBody)
	}

	if len(doc.Experience) > 0 {
		heading(rd, "Experience")
		for _, exp := range doc.Experience {
			rd.AddEmptyParagraph().AddText(exp.JobTitle).Bold(true).Size(sizeEntryTitle)
			datedLine(rd, joinNonEmpty(" | ", exp.Company, exp.Location), exp.StartDate+" - "+exp.EndDate)
			for _, r := range exp.Responsibilities {
				bullet(rd, r)
			}
			spaceAfter(rd.AddEmptyParagraph(), spacingEntry)
		}
	}

	if len(doc.Education) > 0 {
		heading(rd, "Education")
		for _, edu := range doc.Education {
			rd.AddEmptyParagraph().AddText(edu.Degree).Bold(true).Size(sizeEntryTitle)
			datedLine(rd, joinNonEmpty(" | ", edu.Institution, edu.Location), edu.GraduationDate)
			for _, d := range edu.Details {
				bullet(rd, d)
			}
			spaceAfter(rd.AddEmptyParagraph(), spacingEntry)
		}
	}

	if len(doc.Skills) > 0 {
		heading(rd, "Skills")
		for _, row := range SkillRows(doc.Skills) {
			rd.AddEmptyParagraph().AddText(row).Size(sizeBody)
		}
	}
}

func heading(rd *docx.RootDoc, title string) {
	p := rd.AddEmptyParagraph()
	spaceAfter(p, spacingAfterHdr)
	p.AddText(title).Bold(true).Underline(stypes.UnderlineSingle).Size(sizeHeading)
}

// datedLine writes the italic place on the left and the date flush right.
func datedLine(rd *docx.RootDoc, place, date string) {
	p := rd.AddEmptyParagraph()
	props(p).Tabs = ctypes.Tabs{Tab: []ctypes.Tab{{Val: stypes.CustTabStopRight, Position: rightTabStop}}}
	p.AddText(place).Italic(true).Size(sizeBody)
	ct := p.GetCT()
	ct.Children = append(ct.Children, ctypes.ParagraphChild{
		Run: &ctypes.Run{Children: []ctypes.RunChild{{Tab: &ctypes.Empty{}}}},
	})
	p.AddText(date).Size(sizeBody)
}

func bullet(rd *docx.RootDoc, text string) {
	p := rd.AddEmptyParagraph()
	left, hanging := bulletIndent, uint64(bulletIndent)
	props(p).Indent = &ctypes.Indent{Left: &left, Hanging: &hanging}
	p.AddText("• " + text).Size(sizeBody)
}

func spaceAfter(p *docx.Paragraph, after uint64) {
	props(p).Spacing = &ctypes.Spacing{After: &after}
}

func props(p *docx.Paragraph) *ctypes.ParagraphProp {
	ct := p.GetCT()
	if ct.Property == nil {
		ct.Property = ctypes.DefaultParaProperty()
	}
	return ct.Property
}

func setPageLayout(rd *docx.RootDoc) {
	width, height := uint64(pageWidth), uint64(pageHeight)
	margin, edge, gutter := pageMargin, 720, 0
	rd.Document.Body.SectPr = &ctypes.SectionProp{
		PageSize: &ctypes.PageSize{Width: &width, Height: &height},
		PageMargin: &ctypes.PageMargin{
			Top: &margin, Right: &margin, Bottom: &margin, Left: &margin,
			Header: &edge, Footer: &edge, Gutter: &gutter,
		},
	}
}

// setTitle fills the empty dc:title of the template's core properties.
func setTitle(rd *docx.RootDoc, name string) {
	raw, ok := rd.FileMap.Load(corePropsPath)
	if !ok {
		return
	}
	core, ok := raw.([]byte)
	if !ok {
		return
	}
	var title bytes.Buffer
	_ = xml.EscapeText(&title, []byte(strings.TrimSpace(name+" Resume")))
	core = bytes.Replace(core, []byte("<dc:title/>"), []byte("<dc:title>"+title.String()+"</dc:title>"), 1)
	rd.FileMap.Store(corePropsPath, core)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
