//go:build !linux && !darwin

package classify

import (
	"io/fs"
	"time"
)

// accessTime falls back to the modification time where the platform stat
// structure is not inspected
func accessTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
