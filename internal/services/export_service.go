package services

import (
	"context"

	"go.uber.org/zap"

	"travelcraft/pkg/utils"
)

const ItineraryTitle = "旅のしおり"

// ExportOptions is the fixed page setup for exported itineraries.
type ExportOptions struct {
	Filename    string
	PageSize    string // gofpdf size name
	Orientation string // "P" or "L"
	Unit        string
	Margin      float64 // in Unit
}

var DefaultExportOptions = ExportOptions{
	Filename:    "travel_plan.pdf",
	PageSize:    "A4",
	Orientation: "P",
	Unit:        "in",
	Margin:      0.5,
}

// ItineraryRegion is the rendered plan as shown on the page.
type ItineraryRegion struct {
	Title string
	Lines []string
}

// DocumentRenderer turns a region into a paged document.
type DocumentRenderer interface {
	Render(region ItineraryRegion, opts ExportOptions) ([]byte, error)
}

type ExportedDocument struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ExportServiceInterface interface {
	Export(ctx context.Context, sessionID string) (*ExportedDocument, error)
}

type ExportService struct {
	forms    FormServiceInterface
	renderer DocumentRenderer
	opts     ExportOptions
	logger   *zap.Logger
}

func NewExportService(forms FormServiceInterface, renderer DocumentRenderer, opts ExportOptions, logger *zap.Logger) ExportServiceInterface {
	return &ExportService{
		forms:    forms,
		renderer: renderer,
		opts:     opts,
		logger:   logger.Named("export"),
	}
}

// Export returns utils.ErrNoRenderedPlan when the session has no plan on screen.
func (e *ExportService) Export(ctx context.Context, sessionID string) (*ExportedDocument, error) {
	session, err := e.forms.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Plan == "" {
		return nil, utils.ErrNoRenderedPlan
	}

	region := ItineraryRegion{
		Title: ItineraryTitle,
		Lines: SplitPlanLines(session.Plan),
	}

	content, err := e.renderer.Render(region, e.opts)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("itinerary exported",
		zap.String("session_id", sessionID),
		zap.Int("lines", len(region.Lines)),
		zap.Int("bytes", len(content)))

	return &ExportedDocument{
		Filename:    e.opts.Filename,
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}
