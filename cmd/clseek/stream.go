package clseek

import (
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/seek"
	"github.com/spf13/pflag"
)

// optionStream collects (code, value) pairs from many flags in the order
// they appear on the command line
type optionStream struct {
	options []criteria.Option
}

// streamFlag is a pflag.Value that appends every Set to its stream
type streamFlag struct {
	stream  *optionStream
	code    rune
	boolean bool
	last    string
}

func (f *streamFlag) Set(s string) error {
	if f.boolean {
		if _, err := strconv.ParseBool(s); err != nil {
			return err
		}
	}
	f.last = s
	f.stream.options = append(f.stream.options, criteria.Option{Code: f.code, Value: s})
	return nil
}

func (f *streamFlag) String() string {
	if f.last == "" && f.boolean {
		return "false"
	}
	return f.last
}

func (f *streamFlag) Type() string {
	if f.boolean {
		return "bool"
	}
	return "string"
}

// value binds a flag taking an argument
func (s *optionStream) value(flags *pflag.FlagSet, name, short string, code rune, usage string) {
	flags.VarP(&streamFlag{stream: s, code: code}, name, short, usage)
}

// toggle binds a flag that may be given without an argument
func (s *optionStream) toggle(flags *pflag.FlagSet, name, short string, code rune, usage string) {
	f := flags.VarPF(&streamFlag{stream: s, code: code, boolean: true}, name, short, usage)
	f.NoOptDefVal = "true"
}

// bindSeekFlags declares every seek flag on flags, feeding stream
func bindSeekFlags(flags *pflag.FlagSet, stream *optionStream) {
	flags.SortFlags = false

	stream.value(flags, "equals", "", criteria.CodeNameEquals, MsgFlagEquals)
	stream.value(flags, "begins", "b", criteria.CodeNameBegins, MsgFlagBegins)
	stream.value(flags, "ends", "e", criteria.CodeNameEnds, MsgFlagEnds)
	stream.value(flags, "contains", "c", criteria.CodeNameContains, MsgFlagContains)
	stream.value(flags, "excludes", "x", criteria.CodeNameExcludes, MsgFlagExcludes)
	stream.value(flags, "excludes-begin", "y", criteria.CodeNameExcludesBegin, MsgFlagExcludesBegin)
	stream.value(flags, "excludes-end", "z", criteria.CodeNameExcludesEnd, MsgFlagExcludesEnd)
	stream.value(flags, "name-length", "w", criteria.CodeNameLength, MsgFlagNameLength)
	stream.value(flags, "regex", "m", criteria.CodeNameRegex, MsgFlagRegex)

	stream.value(flags, "path-contains", "C", criteria.CodePathContains, MsgFlagPathContains)
	stream.value(flags, "path-excludes", "X", criteria.CodePathExcludes, MsgFlagPathExcludes)
	stream.value(flags, "path-regex", "M", criteria.CodePathRegex, MsgFlagPathRegex)
	stream.value(flags, "glob", "g", criteria.CodeGlob, MsgFlagGlob)

	stream.value(flags, "newer", "n", criteria.CodeNewer, MsgFlagNewer)
	stream.value(flags, "older", "o", criteria.CodeOlder, MsgFlagOlder)
	stream.value(flags, "time", "t", criteria.CodeTime, MsgFlagTime)
	stream.value(flags, "size", "s", criteria.CodeSize, MsgFlagSize)
	stream.value(flags, "perm", "p", criteria.CodePermission, MsgFlagPerm)
	stream.value(flags, "attr", "a", criteria.CodeAttributes, MsgFlagAttr)

	stream.toggle(flags, "recursive", "r", seek.CodeRecursive, MsgFlagRecursive)
	stream.value(flags, "max-depth", "L", seek.CodeMaxDepth, MsgFlagMaxDepth)
	stream.value(flags, "target", "D", seek.CodeTarget, MsgFlagTarget)
	stream.toggle(flags, "ignore-case", "i", criteria.CodeIgnoreCase, MsgFlagIgnoreCase)
	stream.toggle(flags, "case-sensitive", "I", criteria.CodeCaseSensitive, MsgFlagCaseSensitive)

	stream.toggle(flags, "junk-paths", "j", seek.CodeJunkPaths, MsgFlagJunkPaths)
	stream.toggle(flags, "null", "0", seek.CodeNull, MsgFlagNull)
	stream.toggle(flags, "quiet", "q", seek.CodeQuiet, MsgFlagSeekQuiet)
	stream.value(flags, "exec", "E", seek.CodeExec, MsgFlagExec)
	stream.value(flags, "limit", "l", seek.CodeLimit, MsgFlagLimit)
	stream.toggle(flags, "show-settings", "S", seek.CodeShowSettings, MsgFlagShowSettings)
}

// presetOptions parses the configured default seek options with the same
// flag definitions as the command line
func presetOptions(preset string) ([]criteria.Option, error) {
	args := strings.Fields(preset)
	if len(args) == 0 {
		return nil, nil
	}
	stream := &optionStream{}
	flags := pflag.NewFlagSet("preset", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	bindSeekFlags(flags, stream)
	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid seek preset %q", preset)
	}
	if flags.NArg() > 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrPresetArgs, preset)
	}
	return stream.options, nil
}
