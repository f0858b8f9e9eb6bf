// cmd/clseek/stream_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: pflag
// PURPOSE: Test that seek flags keep command line order across flags

package clseek

import (
	"testing"

	"github.com/arthur-debert/clseek/pkg/criteria"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/seek"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSeekArgs(t *testing.T, args ...string) ([]criteria.Option, []string) {
	t.Helper()
	stream := &optionStream{}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindSeekFlags(flags, stream)
	require.NoError(t, flags.Parse(args))
	return stream.options, flags.Args()
}

func TestOptionStreamOrder(t *testing.T) {
	opts, args := parseSeekArgs(t, "-c", "foo", "-i", "src", "-x", "bar", "--contains=baz", "-I", "-L", "3")

	assert.Equal(t, []criteria.Option{
		{Code: criteria.CodeNameContains, Value: "foo"},
		{Code: criteria.CodeIgnoreCase, Value: "true"},
		{Code: criteria.CodeNameExcludes, Value: "bar"},
		{Code: criteria.CodeNameContains, Value: "baz"},
		{Code: criteria.CodeCaseSensitive, Value: "true"},
		{Code: seek.CodeMaxDepth, Value: "3"},
	}, opts)
	assert.Equal(t, []string{"src"}, args)
}

func TestOptionStreamToggles(t *testing.T) {
	t.Run("explicit_value", func(t *testing.T) {
		opts, _ := parseSeekArgs(t, "-r=false", "--null=true")
		assert.Equal(t, []criteria.Option{
			{Code: seek.CodeRecursive, Value: "false"},
			{Code: seek.CodeNull, Value: "true"},
		}, opts)
	})

	t.Run("combined_shorthands", func(t *testing.T) {
		opts, _ := parseSeekArgs(t, "-rjq")
		assert.Equal(t, []criteria.Option{
			{Code: seek.CodeRecursive, Value: "true"},
			{Code: seek.CodeJunkPaths, Value: "true"},
			{Code: seek.CodeQuiet, Value: "true"},
		}, opts)
	})

	t.Run("rejects_non_boolean", func(t *testing.T) {
		stream := &optionStream{}
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		bindSeekFlags(flags, stream)
		assert.Error(t, flags.Parse([]string{"--recursive=maybe"}))
		assert.Empty(t, stream.options)
	})

	t.Run("equals_has_no_shorthand", func(t *testing.T) {
		opts, _ := parseSeekArgs(t, "--equals", "Makefile")
		assert.Equal(t, []criteria.Option{{Code: criteria.CodeNameEquals, Value: "Makefile"}}, opts)
	})
}

func TestPresetOptions(t *testing.T) {
	opts, err := presetOptions("  -i   -X .git ")
	require.NoError(t, err)
	assert.Equal(t, []criteria.Option{
		{Code: criteria.CodeIgnoreCase, Value: "true"},
		{Code: criteria.CodePathExcludes, Value: ".git"},
	}, opts)

	opts, err = presetOptions("")
	require.NoError(t, err)
	assert.Empty(t, opts)

	_, err = presetOptions("--no-such-flag")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestExitWith(t *testing.T) {
	assert.NoError(t, exitWith(0))

	err := exitWith(7)
	require.Error(t, err)
	assert.Equal(t, 7, err.(*ExitStatus).Code)

	assert.Equal(t, maxCountStatus, exitWith(1000).(*ExitStatus).Code)
}
