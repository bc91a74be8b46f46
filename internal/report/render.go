package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// warningMarker prefixes values that carry an advisory.
const warningMarker = "! "

// RenderTable writes r as one aligned two-column table per section.
func RenderTable(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	header := "Design: " + r.Design
	if r.Name != "" {
		header = r.Name + "  (" + r.Design + ")"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range r.Sections {
		if _, err := fmt.Fprintf(tw, "\n%s\n%s\n", s.Title, strings.Repeat("-", len(s.Title))); err != nil {
			return fmt.Errorf("writing section %q: %w", s.Title, err)
		}
		for _, row := range s.Rows {
			value := row.Value
			if row.Warning {
				value = warningMarker + value
			}
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", row.Label, value); err != nil {
				return fmt.Errorf("writing row %q: %w", row.Label, err)
			}
		}
	}

	if len(r.Advisories) > 0 {
		if _, err := fmt.Fprintln(tw, "\nAdvisories"); err != nil {
			return fmt.Errorf("writing advisories: %w", err)
		}
		for _, a := range r.Advisories {
			if _, err := fmt.Fprintln(tw, warningMarker+a); err != nil {
				return fmt.Errorf("writing advisory: %w", err)
			}
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
