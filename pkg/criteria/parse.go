package criteria

import (
	"io/fs"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/clseek/pkg/errors"
)

var timeUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

var sizeUnits = map[byte]int64{
	'b': 1,
	'k': 1 << 10,
	'm': 1 << 20,
	'g': 1 << 30,
}

func parseError(kind, spec, reason string) error {
	return errors.Newf(errors.ErrConstraintParse, "invalid %s spec %q: %s", kind, spec, reason).
		WithDetail("spec", spec)
}

// ParseTimeSpec parses "[+|-]N(s|m|h|d|w)". No sign or "-" selects Within,
// "+" selects Over.
func ParseTimeSpec(spec string) (TimeConstraint, error) {
	tc := TimeConstraint{Direction: Within}
	body := spec
	switch {
	case strings.HasPrefix(body, "+"):
		tc.Direction = Over
		body = body[1:]
	case strings.HasPrefix(body, "-"):
		body = body[1:]
	}
	if len(body) < 2 {
		return tc, parseError("time", spec, "expected a number followed by s, m, h, d or w")
	}
	unit, ok := timeUnits[body[len(body)-1]]
	if !ok {
		return tc, parseError("time", spec, "unknown unit, use s, m, h, d or w")
	}
	n, ok := parseCount(body[:len(body)-1])
	if !ok {
		return tc, parseError("time", spec, "expected a non-negative number")
	}
	if n > math.MaxInt64/int64(unit) {
		return tc, parseError("time", spec, "duration out of range")
	}
	tc.Duration = time.Duration(n) * unit
	return tc, nil
}

// ParseSizeSpec parses "[+|+=|-|-=|=]N[b|k|m|g]" or "A~B". Units are powers of
// 1024 and default to bytes. A reversed range is normalized so lower <= upper.
func ParseSizeSpec(spec string) (RangeConstraint, error) {
	rc, err := parseRange("size", spec, parseSize)
	if err != nil {
		return rc, err
	}
	if rc.Mode == InRange && rc.Lower > rc.Upper {
		rc.Lower, rc.Upper = rc.Upper, rc.Lower
	}
	return rc, nil
}

// ParseNameLengthSpec parses the size grammar without units. A reversed
// range is kept as given and therefore matches nothing.
func ParseNameLengthSpec(spec string) (RangeConstraint, error) {
	return parseRange("name length", spec, parseCount)
}

// parseCount accepts unsigned decimal digits only; a sign left over after
// the comparison prefix is an error.
func parseCount(s string) (int64, bool) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func parseRange(kind, spec string, number func(string) (int64, bool)) (RangeConstraint, error) {
	rc := RangeConstraint{Mode: Equal}
	body := spec
	for _, prefix := range []struct {
		text string
		mode Comparison
	}{
		{"+=", GreaterOrEqual},
		{"-=", LessOrEqual},
		{"+", Greater},
		{"-", Less},
		{"=", Equal},
	} {
		if strings.HasPrefix(body, prefix.text) {
			rc.Mode = prefix.mode
			body = body[len(prefix.text):]
			break
		}
	}

	if lo, hi, isRange := strings.Cut(body, "~"); isRange {
		if body != spec {
			return rc, parseError(kind, spec, "a range cannot carry a comparison prefix")
		}
		lower, okLo := number(lo)
		upper, okHi := number(hi)
		if !okLo || !okHi {
			return rc, parseError(kind, spec, "malformed range bound")
		}
		rc.Mode = InRange
		rc.Lower, rc.Upper = lower, upper
		return rc, nil
	}

	v, ok := number(body)
	if !ok {
		return rc, parseError(kind, spec, "malformed number")
	}
	rc.Value = v
	return rc, nil
}

func parseSize(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	multiplier := int64(1)
	if unit, ok := sizeUnits[lowerByte(s[len(s)-1])]; ok {
		multiplier = unit
		s = s[:len(s)-1]
	}
	n, ok := parseCount(s)
	if !ok || n > math.MaxInt64/multiplier {
		return 0, false
	}
	return n * multiplier, true
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// ParsePermissionSpec parses "[-|+|=]rwx". "-" requires none of the bits,
// "+" requires all of them and "=" or no prefix requires exactly them.
func ParsePermissionSpec(spec string) (PermissionConstraint, error) {
	pc := PermissionConstraint{State: ToMatch}
	body := spec
	if body != "" {
		switch body[0] {
		case '-':
			pc.State = NotInclude
			body = body[1:]
		case '+':
			pc.State = ToInclude
			body = body[1:]
		case '=':
			body = body[1:]
		}
	}
	if body == "" {
		return pc, parseError("permission", spec, "expected r, w or x")
	}
	for _, r := range body {
		switch r {
		case 'r':
			pc.Bits |= fs.FileMode(0400)
		case 'w':
			pc.Bits |= fs.FileMode(0200)
		case 'x':
			pc.Bits |= fs.FileMode(0100)
		default:
			return pc, parseError("permission", spec, "only r, w and x are allowed")
		}
	}
	return pc, nil
}

// ParseAttributes parses entity letters: d directories, f files, h symlinks,
// o others, uppercase variants also request details, A means everything with
// details.
func ParseAttributes(spec string) (Attributes, bool, error) {
	var attrs Attributes
	details := false
	if spec == "" {
		return attrs, details, parseError("attribute", spec, "expected one of d, f, h, o, D, F, H, O, A")
	}
	for _, r := range spec {
		switch r {
		case 'd', 'D':
			attrs |= AttrDirectory
		case 'f', 'F':
			attrs |= AttrFile
		case 'h', 'H':
			attrs |= AttrSymlink
		case 'o', 'O':
			attrs |= AttrOther
		case 'A':
			attrs |= AttrAll
		default:
			return attrs, details, parseError("attribute", spec, "unknown letter "+strconv.QuoteRune(r))
		}
		if r >= 'A' && r <= 'Z' {
			details = true
		}
	}
	return attrs, details, nil
}
