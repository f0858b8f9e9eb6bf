package dirsync

import (
	"strconv"

	"github.com/pterm/pterm"
)

// Stats counts what a run did, or would do in dry run mode
type Stats struct {
	FilesChecked     int
	FilesCreated     int
	FilesDeleted     int
	FileDeleteFailed int
	DirsChecked      int
	DirsCreated      int
	DirsDeleted      int
	DirDeleteFailed  int
}

// Table renders the stats as a pterm table
func (s Stats) Table(dryRun bool) (string, error) {
	verb := func(done, would string) string {
		if dryRun {
			return would
		}
		return done
	}
	data := pterm.TableData{
		{"", "checked", verb("created", "would create"), verb("deleted", "would delete"), "delete failed"},
		{"files", itoa(s.FilesChecked), itoa(s.FilesCreated), itoa(s.FilesDeleted), itoa(s.FileDeleteFailed)},
		{"directories", itoa(s.DirsChecked), itoa(s.DirsCreated), itoa(s.DirsDeleted), itoa(s.DirDeleteFailed)},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
