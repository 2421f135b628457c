// Package printing turns business documents into PDF files.
//
// Documents are rendered in two steps: the TemplateEngine executes one of the
// embedded html/template files with pt-BR number and date formatting, then a
// PDFRenderer (ChromedpRenderer in production) prints the HTML to PDF.
// DocumentArchive keeps a copy of each PDF in object storage.
//
// Example usage:
//
//	engine, err := NewTemplateEngine()
//	if err != nil {
//	    return err
//	}
//	html, err := engine.Render(printing.DocTypeQuote, data)
//	if err != nil {
//	    return err
//	}
//	result, err := renderer.Render(ctx, &RenderRequest{
//	    HTML:   html,
//	    Layout: printing.LayoutFor(printing.DocTypeQuote),
//	})
package printing
