package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/printdesk/backend/internal/domain/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecOptions_NoSandbox(t *testing.T) {
	base := len(execOptions(false))
	assert.Len(t, execOptions(true), base+1)
	assert.Greater(t, base, len(chromedp.DefaultExecAllocatorOptions))
}

func TestBuildPrintParams_QuoteLayout(t *testing.T) {
	r := &ChromedpRenderer{config: ChromedpConfig{Scale: 1.0}}

	params := r.buildPrintParams(&RenderRequest{
		HTML:   "<p>orçamento</p>",
		Layout: printing.LayoutFor(printing.DocTypeQuote),
	})

	assert.InDelta(t, mmToInches(210), params.paperWidth, 0.01)
	assert.InDelta(t, mmToInches(297), params.paperHeight, 0.01)
	assert.False(t, params.landscape)
	assert.True(t, params.printBackground)
	assert.InDelta(t, mmToInches(12), params.marginTop, 0.001)
	assert.InDelta(t, mmToInches(16), params.marginBottom, 0.001)
	assert.False(t, params.displayHeaderFooter)
	assert.Equal(t, 1.0, params.scale)
}

func TestBuildPrintParams_RevenueReportIsLandscape(t *testing.T) {
	r := &ChromedpRenderer{config: ChromedpConfig{Scale: 1.0}}

	params := r.buildPrintParams(&RenderRequest{
		HTML:   "<p>faturamento</p>",
		Layout: printing.LayoutFor(printing.DocTypeRevenueReport),
	})

	assert.True(t, params.landscape)
}

func TestBuildPrintParams_A5(t *testing.T) {
	r := &ChromedpRenderer{config: ChromedpConfig{Scale: 1.0}}

	params := r.buildPrintParams(&RenderRequest{
		HTML: "<p>x</p>",
		Layout: printing.Layout{
			PaperSize:   printing.PaperSizeA5,
			Orientation: printing.OrientationPortrait,
		},
	})

	assert.InDelta(t, mmToInches(148), params.paperWidth, 0.01)
	assert.InDelta(t, mmToInches(210), params.paperHeight, 0.01)
	assert.Zero(t, params.marginLeft)
}

func TestBuildPrintParams_FooterReservesBottomMargin(t *testing.T) {
	r := &ChromedpRenderer{config: ChromedpConfig{Scale: 1.0}}

	params := r.buildPrintParams(&RenderRequest{
		HTML: "<p>x</p>",
		Layout: printing.Layout{
			PaperSize: printing.PaperSizeA4,
			Margins:   printing.Margins{Top: 5, Right: 5, Bottom: 2, Left: 5},
		},
		FooterHTML: `<div style="font-size:8px">Página <span class="pageNumber"></span></div>`,
	})

	assert.True(t, params.displayHeaderFooter)
	assert.Contains(t, params.footerTemplate, "pageNumber")
	assert.InDelta(t, mmToInches(10), params.marginBottom, 0.001)
}

func TestBuildCompleteHTML_WrapsFragment(t *testing.T) {
	r := &ChromedpRenderer{config: ChromedpConfig{}}

	html := r.buildCompleteHTML(&RenderRequest{
		HTML:  "<h1>Pedido</h1>",
		Title: "Pedido <A1B2C3D4>",
	})

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, `<meta charset="UTF-8">`)
	assert.Contains(t, html, "<title>Pedido &lt;A1B2C3D4&gt;</title>")
	assert.Contains(t, html, "<body><h1>Pedido</h1></body>")
}

func TestBuildCompleteHTML_KeepsFullDocument(t *testing.T) {
	r := &ChromedpRenderer{config: ChromedpConfig{}}
	doc := "<!DOCTYPE html><html><body>ok</body></html>"

	assert.Equal(t, doc, r.buildCompleteHTML(&RenderRequest{HTML: doc, Title: "ignored"}))
}

func TestChromedpRenderer_RejectsInvalidRequests(t *testing.T) {
	r := &ChromedpRenderer{config: ChromedpConfig{DefaultTimeout: time.Second}}
	ctx := context.Background()

	tests := []struct {
		name string
		req  *RenderRequest
		code string
	}{
		{"nil request", nil, ErrCodeInvalidHTML},
		{"blank html", &RenderRequest{HTML: "   ", Layout: printing.LayoutFor(printing.DocTypeOrder)}, ErrCodeInvalidHTML},
		{"unknown paper", &RenderRequest{HTML: "<p>x</p>", Layout: printing.Layout{PaperSize: "LETTER"}}, ErrCodeInvalidPaperSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Render(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, result)

			var renderErr *RenderError
			require.True(t, errors.As(err, &renderErr))
			assert.Equal(t, tt.code, renderErr.Code)
		})
	}
}

func TestMmToInches(t *testing.T) {
	assert.InDelta(t, 1.0, mmToInches(25.4), 0.0001)
	assert.InDelta(t, 8.2677, mmToInches(210), 0.001)
}

func TestChromedpRenderer_CloseWithoutAllocator(t *testing.T) {
	r := &ChromedpRenderer{config: ChromedpConfig{}}
	assert.NoError(t, r.Close())
}
