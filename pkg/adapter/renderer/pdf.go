package renderer

import (
	"bytes"
	"context"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/interfaces"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
)

// PDFRenderer renders an outline to a landscape PDF, one page per slide. It
// needs no external service, which makes it the default for local runs.
type PDFRenderer struct{}

var _ interfaces.Renderer = &PDFRenderer{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (x *PDFRenderer) Render(ctx context.Context, outline *deck.Outline, template types.TemplateKey) (*deck.RenderResult, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(outline.Title, true)

	for _, slide := range outline.Slides {
		pdf.AddPage()
		switch slide.Type {
		case deck.SlideTypeTitle:
			pdf.SetFont("Helvetica", "B", 36)
			pdf.SetY(70)
			pdf.MultiCell(0, 16, slide.Heading, "", "C", false)
			if slide.Subheading != "" {
				pdf.SetFont("Helvetica", "", 20)
				pdf.Ln(8)
				pdf.MultiCell(0, 10, slide.Subheading, "", "C", false)
			}
		default:
			pdf.SetFont("Helvetica", "B", 24)
			pdf.SetY(20)
			pdf.MultiCell(0, 12, slide.Heading, "", "L", false)
			if slide.Subheading != "" {
				pdf.SetFont("Helvetica", "I", 14)
				pdf.MultiCell(0, 8, slide.Subheading, "", "L", false)
			}
			pdf.SetFont("Helvetica", "", 16)
			pdf.Ln(6)
			for _, bullet := range slide.Bullets {
				pdf.MultiCell(0, 9, "  \x95 "+bullet, "", "L", false)
				pdf.Ln(1)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, goerr.Wrap(errs.ErrRenderFailed, "failed to render PDF",
			goerr.V("title", outline.Title),
			goerr.V("cause", err.Error()))
	}

	return &deck.RenderResult{
		Filename:    Filename(outline.Title, "pdf"),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

// Filename derives a safe download filename from the deck title
func Filename(title, ext string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "presentation"
	}
	if len(name) > 64 {
		name = name[:64]
	}
	return name + "." + ext
}
