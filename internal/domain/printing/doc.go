// Package printing describes the business documents the back office renders
// to PDF (quotes, orders and the revenue report) and their page layout.
package printing
