package printing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/printing"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// documentTemplates maps each document type to its template file
var documentTemplates = map[printing.DocType]string{
	printing.DocTypeQuote:         "quote.html",
	printing.DocTypeOrder:         "order.html",
	printing.DocTypeRevenueReport: "revenue_report.html",
}

// TemplateEngine renders the business documents from embedded html/template files.
// Numbers, money and dates are formatted for Brazilian Portuguese.
type TemplateEngine struct {
	templates *template.Template
	funcMap   template.FuncMap
	location  *time.Location
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithLocation sets the time zone used when formatting dates
func WithLocation(loc *time.Location) TemplateEngineOption {
	return func(e *TemplateEngine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// NewTemplateEngine parses the embedded document templates
func NewTemplateEngine(opts ...TemplateEngineOption) (*TemplateEngine, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, err
	}
	return NewTemplateEngineFS(sub, opts...)
}

// NewTemplateEngineFS parses every *.html file at the root of fsys
func NewTemplateEngineFS(fsys fs.FS, opts ...TemplateEngineOption) (*TemplateEngine, error) {
	e := &TemplateEngine{location: time.Local}
	for _, opt := range opts {
		opt(e)
	}

	e.funcMap = template.FuncMap{
		// Money and numbers
		"formatMoney":   formatMoney,
		"formatDecimal": formatDecimal,
		"formatInt":     formatInt,
		"formatPercent": formatPercent,
		"dimensions":    formatDimensions,

		// Dates
		"formatDate":     e.formatDate,
		"formatDateTime": e.formatDateTime,
		"formatMonth":    formatMonth,

		// Text
		"title":      titleCase,
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"statusText": statusText,
		"shortID":    shortID,
		"default":    defaultString,
		"nl2br":      nl2br,

		// Trusted values only: validated colors and system-generated URLs
		"safeCSS": safeCSS,
		"safeURL": safeURL,
	}

	tmpl, err := template.New("documents").Funcs(e.funcMap).ParseFS(fsys, "*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse document templates", err)
	}
	e.templates = tmpl

	return e, nil
}

// Render executes the template of docType against data
func (e *TemplateEngine) Render(docType printing.DocType, data any) (string, error) {
	name, ok := documentTemplates[docType]
	if !ok {
		return "", NewRenderError(ErrCodeTemplateNotFound, "no template for document type "+docType.String(), nil)
	}
	if e.templates.Lookup(name) == nil {
		return "", NewRenderError(ErrCodeTemplateNotFound, "template "+name+" is not loaded", nil)
	}

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template "+name, err)
	}
	return buf.String(), nil
}

// RenderString renders an ad hoc template with the engine's functions
func (e *TemplateEngine) RenderString(name, content string, data any) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// =============================================================================
// Template Functions - Money and Numbers
// =============================================================================

// formatMoney formats a value as Brazilian reais
// Example: 1234.5 -> "R$ 1.234,50"
func formatMoney(v any) string {
	d := toDecimal(v).Round(2)
	if d.IsNegative() {
		return "-R$ " + formatDecimal(d.Abs(), 2)
	}
	return "R$ " + formatDecimal(d, 2)
}

// formatDecimal formats a value with pt-BR separators and fixed precision
// Example: 1234.5, 2 -> "1.234,50"
func formatDecimal(v any, precision int) string {
	d := toDecimal(v).Round(int32(precision))
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf(fmt.Sprintf("%%.%df", precision), d.InexactFloat64())
}

// formatInt formats a whole number with thousand separators
func formatInt(v any) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("%d", toDecimal(v).Round(0).IntPart())
}

// formatPercent formats a value that is already a percentage
// Example: 37.5 -> "37,50%"
func formatPercent(v any) string {
	return formatDecimal(v, 2) + "%"
}

// formatDimensions renders the width × height of an area line in meters
func formatDimensions(width, height *decimal.Decimal) string {
	if width == nil || height == nil {
		return ""
	}
	return formatDecimal(*width, 2) + " × " + formatDecimal(*height, 2) + " m"
}

// =============================================================================
// Template Functions - Dates
// =============================================================================

func (e *TemplateEngine) formatDate(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.In(e.location).Format("02/01/2006")
}

func (e *TemplateEngine) formatDateTime(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.In(e.location).Format("02/01/2006 15:04")
}

var monthAbbreviations = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// formatMonth turns a YYYY-MM key into "mar/2024"
func formatMonth(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return monthAbbreviations[t.Month()-1] + "/" + t.Format("2006")
}

// =============================================================================
// Template Functions - Text
// =============================================================================

// titleCase builds a Caser per call since a Caser must not be shared between goroutines
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}

// shortID is the document number: the upper-cased id prefix
func shortID(id uuid.UUID) string {
	return strings.ToUpper(printing.ShortID(id))
}

func defaultString(def, s string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// nl2br escapes s and keeps its line breaks
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func safeCSS(s string) template.CSS {
	return template.CSS(s)
}

func safeURL(s string) template.URL {
	return template.URL(s)
}

// statusLabels translates stored codes into the labels printed on documents
var statusLabels = map[string]string{
	// Quote status
	"Open":     "Em aberto",
	"Approved": "Aprovado",
	"Rejected": "Recusado",
	// Payment status
	"PENDING": "Pendente",
	"PARTIAL": "Parcial",
	"PAID":    "Pago",
	// Payment methods
	"CASH":   "Dinheiro",
	"CARD":   "Cartão",
	"PIX":    "Pix",
	"BOLETO": "Boleto",
	// Production
	"Awaiting":      "Aguardando",
	"In production": "Em produção",
	"Finished":      "Finalizado",
	"Delivered":     "Entregue",
	// Expense sources
	"EXPENSE":    "Despesa",
	"PRODUCTION": "Custo de produção",
}

// statusText returns the printed label of a status code, or the code itself
func statusText(status string) string {
	if text, ok := statusLabels[status]; ok {
		return text
	}
	return status
}

// =============================================================================
// Helper Functions
// =============================================================================

// toDecimal converts the numeric types found in document data to decimal.Decimal
func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// toTime converts time values and pointers to time.Time
func toTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, val); err == nil {
				return t
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}
