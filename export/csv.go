// Package export renders results, teams and question banks as CSV
// documents laid out for spreadsheet import.
package export

import (
	"strings"
	"time"
)

const (
	// BOM prefixes spreadsheet-facing documents so the UTF-8 charset is
	// detected on open.
	BOM = "\ufeff"

	// ContentType is sent with every CSV download.
	ContentType = "text/csv; charset=utf-8"

	// TimezoneOffsetHours is the competition's fixed UTC offset (Kyrgyzstan).
	// It is a constant offset, not a zone database lookup.
	TimezoneOffsetHours = 6
)

// Zone is the fixed competition time zone.
var Zone = time.FixedZone("GMT+6", TimezoneOffsetHours*60*60)

// Document is a rendered CSV file ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Quote wraps v in double quotes, doubling any embedded quotes.
func Quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Row renders cells as one line with every cell quoted.
func Row(cells ...string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = Quote(c)
	}
	return strings.Join(quoted, ",")
}

// spreadsheet joins a header and rows into a BOM-prefixed document body.
// With no rows the header is terminated by a newline; otherwise rows are
// newline-separated with no trailing newline.
func spreadsheet(header string, rows []string) []byte {
	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n"))
	return []byte(b.String())
}
