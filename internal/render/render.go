// Package render formats plugin indexes, download summaries and progress for
// the terminal.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"

	"github.com/plugmanager/plugmanager/internal/download"
	"github.com/plugmanager/plugmanager/internal/plugin"
)

// Format is an output encoding for plugin listings
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted output formats
var Formats = []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}

// ParseFormat validates an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

const missing = "-"

// Plugins writes records to w in the requested format. JSON and YAML output
// use the index document shape.
func Plugins(w io.Writer, format Format, records []plugin.Record) error {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = encodeJSON(records)
	case FormatYAML:
		data, err = encodeYAML(records)
	case FormatTable, "":
		data = encodeTable(records)
	default:
		err = fmt.Errorf("unknown output format: %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding plugins as %q failed: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

func document(records []plugin.Record) *plugin.Index {
	if records == nil {
		records = []plugin.Record{}
	}
	return &plugin.Index{Plugins: records}
}

func encodeJSON(records []plugin.Record) ([]byte, error) {
	data, err := json.MarshalIndent(document(records), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeYAML(records []plugin.Record) ([]byte, error) {
	return yaml.Marshal(document(records))
}

func encodeTable(records []plugin.Record) []byte {
	var buf bytes.Buffer
	t := newTable(&buf)
	t.AppendHeader(table.Row{"Name", "File", "Installed", "Latest", "Supports", "Status", "Repository"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Name,
			rec.FileName,
			rec.InstalledVersion,
			orMissing(rec.LatestVersion),
			orMissing(rec.SupportedVersion),
			status(rec),
			orMissing(rec.RepositoryURL),
		})
	}
	t.Render()
	return buf.Bytes()
}

// DownloadSummary writes the outcome of a download run followed by a table of
// the failed plugins, if any.
func DownloadSummary(w io.Writer, summary *download.Summary) {
	_, _ = fmt.Fprintf(w, "Downloaded %d/%d plugins\n", summary.Succeeded, summary.Attempted)

	failed := summary.Failed()
	if len(failed) == 0 {
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Failed plugin", "Reason"})
	for _, o := range failed {
		t.AppendRow(table.Row{o.Record.Name, o.Err.Error()})
	}
	t.Render()
}

// Updates writes the records whose latest version changed during an update check
func Updates(w io.Writer, updated []plugin.Record) {
	if len(updated) == 0 {
		_, _ = fmt.Fprintln(w, "No new plugin versions found")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Installed", "Latest", "Status"})
	for _, rec := range updated {
		t.AppendRow(table.Row{rec.Name, rec.InstalledVersion, orMissing(rec.LatestVersion), status(rec)})
	}
	t.Render()
}

// Links prints the plugins a user linked by hand
func Links(w io.Writer, links []plugin.Link) {
	if len(links) == 0 {
		_, _ = fmt.Fprintln(w, "No manual links saved")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "ID", "Repository"})
	for _, l := range links {
		t.AppendRow(table.Row{l.Name, orMissing(l.RegistryID), l.RepositoryURL})
	}
	t.Render()
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t
}

func status(rec plugin.Record) string {
	switch {
	case rec.IsOutdated == nil:
		if rec.Resolved() {
			return "linked"
		}
		return "unresolved"
	case *rec.IsOutdated:
		return "outdated"
	default:
		return "up to date"
	}
}

func orMissing(s *string) string {
	if s == nil || *s == "" {
		return missing
	}
	return *s
}
