package printing

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/printdesk/backend/internal/domain/printing"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	// page numbers printed by Chrome need room below the content
	minFooterMarginMM = 10
)

// ChromedpConfig configures the headless Chrome renderer
type ChromedpConfig struct {
	DefaultTimeout time.Duration
	// RemoteURL points at a running Chrome (ws:// or http://host:9222).
	// Empty launches a local headless browser.
	RemoteURL string
	// NoSandbox is needed when Chrome runs as root inside a container
	NoSandbox bool
	Scale     float64
	Logger    *zap.Logger
}

// ChromedpRenderer prints HTML documents to PDF through the DevTools protocol.
// One browser is shared; every Render opens and closes its own tab.
type ChromedpRenderer struct {
	config        ChromedpConfig
	logger        *zap.Logger
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromedpRenderer starts the browser allocator
func NewChromedpRenderer(config ChromedpConfig) (*ChromedpRenderer, error) {
	if config.DefaultTimeout <= 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}
	if config.Scale <= 0 {
		config.Scale = 1
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := &ChromedpRenderer{config: config, logger: log}
	var allocCtx context.Context
	if config.RemoteURL != "" {
		allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), config.RemoteURL)
	} else {
		allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), execOptions(config.NoSandbox)...)
	}

	// The first context owns the browser; starting it here surfaces a
	// missing Chrome at boot instead of on the first document.
	r.browserCtx, r.browserCancel = chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Sugar().Debugf))
	if err := chromedp.Run(r.browserCtx); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}
	return r, nil
}

func execOptions(noSandbox bool) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if noSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// Render prints req.HTML and returns the PDF bytes
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tab, closeTab := chromedp.NewContext(r.browserCtx)
	defer closeTab()
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	started := time.Now()
	document := r.buildCompleteHTML(req)
	params := r.buildPrintParams(req)

	var pdf []byte
	err := chromedp.Run(tab,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, document).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = params.command().Do(ctx)
			return err
		}),
	)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		case errors.Is(ctx.Err(), context.Canceled):
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
		}
		r.logger.Error("chromedp rendering failed", zap.String("title", req.Title), zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chrome could not print the document", err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	result := &RenderResult{
		PDFData:        pdf,
		PageCount:      estimatePageCount(pdf),
		RenderDuration: time.Since(started),
	}
	r.logger.Debug("PDF rendered",
		zap.String("title", req.Title),
		zap.Int("bytes", len(pdf)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
	return result, nil
}

func validateRequest(req *RenderRequest) error {
	switch {
	case req == nil:
		return NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	case strings.TrimSpace(req.HTML) == "":
		return NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	case !req.Layout.PaperSize.IsValid():
		return NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(req.Layout.PaperSize), nil)
	}
	return nil
}

// printParams are the page.PrintToPDF arguments, in inches
type printParams struct {
	paperWidth          float64
	paperHeight         float64
	marginTop           float64
	marginRight         float64
	marginBottom        float64
	marginLeft          float64
	scale               float64
	landscape           bool
	printBackground     bool
	displayHeaderFooter bool
	footerTemplate      string
}

func (p *printParams) command() *page.PrintToPDFParams {
	cmd := page.PrintToPDF().
		WithPaperWidth(p.paperWidth).
		WithPaperHeight(p.paperHeight).
		WithMarginTop(p.marginTop).
		WithMarginRight(p.marginRight).
		WithMarginBottom(p.marginBottom).
		WithMarginLeft(p.marginLeft).
		WithScale(p.scale).
		WithLandscape(p.landscape).
		WithPrintBackground(p.printBackground)
	if p.displayHeaderFooter {
		// an empty header template prints Chrome's default url/date header
		cmd = cmd.WithDisplayHeaderFooter(true).
			WithHeaderTemplate("<span></span>").
			WithFooterTemplate(p.footerTemplate)
	}
	return cmd
}

func (r *ChromedpRenderer) buildPrintParams(req *RenderRequest) *printParams {
	layout := req.Layout
	width, height := layout.PaperSize.Dimensions()

	params := &printParams{
		paperWidth:      mmToInches(float64(width)),
		paperHeight:     mmToInches(float64(height)),
		marginTop:       mmToInches(float64(layout.Margins.Top)),
		marginRight:     mmToInches(float64(layout.Margins.Right)),
		marginBottom:    mmToInches(float64(layout.Margins.Bottom)),
		marginLeft:      mmToInches(float64(layout.Margins.Left)),
		scale:           r.config.Scale,
		landscape:       layout.Orientation == printing.OrientationLandscape,
		printBackground: true,
	}
	if req.FooterHTML != "" {
		params.displayHeaderFooter = true
		params.footerTemplate = req.FooterHTML
		params.marginBottom = max(params.marginBottom, mmToInches(minFooterMarginMM))
	}
	return params
}

// buildCompleteHTML wraps a fragment in a UTF-8 document; full documents pass through
func (r *ChromedpRenderer) buildCompleteHTML(req *RenderRequest) string {
	lower := strings.ToLower(req.HTML)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return req.HTML
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8">`)
	if req.Title != "" {
		b.WriteString("<title>" + html.EscapeString(req.Title) + "</title>")
	}
	b.WriteString("</head><body>")
	b.WriteString(req.HTML)
	b.WriteString("</body></html>")
	return b.String()
}

// Close shuts the browser down
func (r *ChromedpRenderer) Close() error {
	if r.browserCancel != nil {
		r.browserCancel()
	}
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)
