package criteria

import (
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Summary is a printable view of a Criteria, used by "seek -S"
type Summary struct {
	IgnoreCase        bool     `toml:"ignore_case"`
	Kinds             []string `toml:"kinds"`
	NameEquals        string   `toml:"name_equals,omitempty"`
	NameBegins        string   `toml:"name_begins,omitempty"`
	NameEnds          string   `toml:"name_ends,omitempty"`
	NameContains      []string `toml:"name_contains,omitempty"`
	NameExcludes      []string `toml:"name_excludes,omitempty"`
	NameExcludesBegin []string `toml:"name_excludes_begin,omitempty"`
	NameExcludesEnd   []string `toml:"name_excludes_end,omitempty"`
	PathContains      []string `toml:"path_contains,omitempty"`
	PathExcludes      []string `toml:"path_excludes,omitempty"`
	NameRegex         string   `toml:"name_regex,omitempty"`
	PathRegex         string   `toml:"path_regex,omitempty"`
	Glob              string   `toml:"glob,omitempty"`
	NewerThan         string   `toml:"newer_than,omitempty"`
	OlderThan         string   `toml:"older_than,omitempty"`
	Time              string   `toml:"time,omitempty"`
	Size              string   `toml:"size,omitempty"`
	NameLength        string   `toml:"name_length,omitempty"`
	Permission        string   `toml:"permission,omitempty"`
	Categories        int      `toml:"categories"`
}

// Summarize flattens c into a Summary
func (c *Criteria) Summarize() Summary {
	s := Summary{
		IgnoreCase:        c.IgnoreCase,
		Kinds:             c.Kinds.Names(),
		NameEquals:        c.NameEquals,
		NameBegins:        c.NameBegins,
		NameEnds:          c.NameEnds,
		NameContains:      c.NameContains.Patterns(),
		NameExcludes:      c.NameExcludes.Patterns(),
		NameExcludesBegin: c.NameExcludesBegin.Patterns(),
		NameExcludesEnd:   c.NameExcludesEnd.Patterns(),
		PathContains:      c.PathContains.Patterns(),
		PathExcludes:      c.PathExcludes.Patterns(),
		Glob:              c.Glob,
		Categories:        c.Configured(),
	}
	if c.NameRegex != nil {
		s.NameRegex = c.NameRegex.String()
	}
	if c.PathRegex != nil {
		s.PathRegex = c.PathRegex.String()
	}
	if c.NewerThan != nil {
		s.NewerThan = c.NewerThan.Format(time.RFC3339)
	}
	if c.OlderThan != nil {
		s.OlderThan = c.OlderThan.Format(time.RFC3339)
	}
	if c.TimeWindow != nil {
		dir := "within"
		if c.TimeWindow.Direction == Over {
			dir = "over"
		}
		s.Time = dir + " " + c.TimeWindow.Duration.String()
	}
	if c.Size != nil {
		s.Size = c.Size.String()
	}
	if c.NameLength != nil {
		s.NameLength = c.NameLength.String()
	}
	if c.Permission != nil {
		s.Permission = c.Permission.String()
	}
	return s
}

// SummaryTOML renders the summary as TOML
func (c *Criteria) SummaryTOML() ([]byte, error) {
	return toml.Marshal(c.Summarize())
}
