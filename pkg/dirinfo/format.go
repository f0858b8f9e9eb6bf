package dirinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/style"
	"github.com/beevik/etree"
	"github.com/dustin/go-humanize"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format represents the report output format
type Format int

const (
	// FormatText prints the count lines and one line per match
	FormatText Format = iota
	FormatYAML
	FormatJSON
	FormatTOML
	FormatXML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "plain", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatText, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s)
	}
}

// Render writes the report to w in format f
func (r *Report) Render(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return r.renderText(w)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(r)
	case FormatXML:
		return r.renderXML(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown format: %v", f)
	}
}

func (r *Report) renderText(w io.Writer) error {
	var b strings.Builder
	for _, row := range []struct {
		label string
		count int
	}{
		{"directories", r.Directories},
		{"files      ", r.Files},
		{"other types", r.Others},
	} {
		heading := style.Paint("heading", "# of "+r.Root+" "+row.label)
		fmt.Fprintf(&b, "%s %s\n", heading, style.Paint("bold", strconv.Itoa(row.count)))
	}
	fmt.Fprintf(&b, "%s in files (%s bytes)\n",
		style.Paint("bold", humanize.IBytes(uint64(r.Bytes))), humanize.Comma(r.Bytes))
	for _, m := range r.Matches {
		fmt.Fprintf(&b, "%s %s\n", style.Paint("muted", "["+m.Type+"]"), m.Path)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Report) renderXML(w io.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("dirinfo")
	root.CreateAttr("root", r.Root)
	root.CreateAttr("recursive", strconv.FormatBool(r.Recursive))
	root.CreateElement("directories").SetText(strconv.Itoa(r.Directories))
	root.CreateElement("files").SetText(strconv.Itoa(r.Files))
	root.CreateElement("others").SetText(strconv.Itoa(r.Others))
	root.CreateElement("bytes").SetText(strconv.FormatInt(r.Bytes, 10))

	matches := root.CreateElement("matches")
	for _, m := range r.Matches {
		e := matches.CreateElement("entry")
		e.CreateAttr("type", m.Type)
		e.CreateAttr("size", strconv.FormatInt(m.Size, 10))
		e.CreateAttr("mod_time", m.ModTime.UTC().Format(time.RFC3339))
		e.SetText(m.Path)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
