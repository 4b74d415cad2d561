package services

import (
	"bytes"
	"fmt"
	"os"

	"github.com/phpdave11/gofpdf"
)

const (
	itineraryFontFamily = "itinerary"
	titleFontSize       = 15.0 // pt
	lineFontSize        = 12.0 // pt
)

// GofpdfRenderer lays the itinerary out as a title followed by one boxed row per line.
// Without a UTF-8 font only cp1252 text survives; Japanese needs PDF_FONT_PATH.
type GofpdfRenderer struct {
	FontPath string
}

func NewGofpdfRenderer(fontPath string) (*GofpdfRenderer, error) {
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err != nil {
			return nil, fmt.Errorf("pdf font: %w", err)
		}
	}
	return &GofpdfRenderer{FontPath: fontPath}, nil
}

func (r *GofpdfRenderer) Render(region ItineraryRegion, opts ExportOptions) ([]byte, error) {
	pdf := gofpdf.New(opts.Orientation, opts.Unit, opts.PageSize, "")
	pdf.SetMargins(opts.Margin, opts.Margin, opts.Margin)
	pdf.SetAutoPageBreak(true, opts.Margin)
	pdf.SetTitle(region.Title, true)

	family, tr := "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
	if r.FontPath != "" {
		pdf.AddUTF8Font(itineraryFontFamily, "", r.FontPath)
		family, tr = itineraryFontFamily, func(s string) string { return s }
	}

	pdf.AddPage()

	// font sizes are points, cell heights are document units
	toUnit := pdf.PointConvert

	pdf.SetFont(family, "", titleFontSize)
	pdf.MultiCell(0, toUnit(titleFontSize*1.6), tr(region.Title), "", "L", false)
	pdf.Ln(toUnit(6))

	pdf.SetFont(family, "", lineFontSize)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(220, 220, 220)
	for _, line := range region.Lines {
		pdf.MultiCell(0, toUnit(lineFontSize*1.8), tr(line), "1", "L", true)
		pdf.Ln(toUnit(4))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
