package dirsync

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/types"
)

// ReadPatternFile returns one pattern per non blank line. Lines starting
// with # are comments.
func ReadPatternFile(fsys types.FS, path string) ([]string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read pattern file %s", path)
	}
	var patterns []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot parse pattern file %s", path)
	}
	return patterns, nil
}
