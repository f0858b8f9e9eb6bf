package clseek

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Filesystem tools built on one traversal engine"
	MsgSeekShort       = "Find entries matching name, path, time, size and type criteria"
	MsgSyncShort       = "Mirror a source directory into a destination"
	MsgWhichShort      = "Look for a program in the directories of PATH"
	MsgIftestShort     = "Test whether a path exists and has an attribute"
	MsgIsemptyShort    = "Tell whether a file or directory tree is empty"
	MsgIsemptyLong     = "Isempty reports whether PATH is empty. A file is empty when its size is zero, a directory when its whole tree holds nothing but directories. The exit status is 1 when empty and 0 when not."
	MsgDirinfoShort    = "Count what a directory holds and list matching entries"
	MsgDirinfoLong     = "Dirinfo walks DIR (default \".\") and reports how many directories, files and other entries it holds, the bytes used by files, and the entries matching the given criteria."
	MsgExamplesShort   = "Show worked examples for a tool"
	MsgExamplesLong    = "Examples renders the usage examples of TOOL, or lists the tools that have examples."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Output
	MsgVersionFormat    = "clseek version %s\n  commit: %s\n  built:  %s\n"
	MsgExamplesHeading  = "Examples are available for:"
	MsgExamplesItem     = "  %s\n"
	MsgManWritten       = "Man pages written to %s\n"
	MsgSyncDryRunNotice = "\n[warning]DRY RUN[/warning] - nothing was changed"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrPresetArgs   = "seek preset %q may only hold flags"
	MsgErrIftestTests  = "only one test may be given"
	MsgErrCompletion   = "unsupported shell %q"
	MsgErrManDirCreate = "cannot create man page directory %s"

	// Global flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/clseek/config.toml)"
	MsgFlagColor   = "Color output: auto, always or never"
	MsgFlagQuiet   = "Print nothing, report through the exit status"

	// seek flag descriptions
	MsgFlagEquals        = "Name equals STRING"
	MsgFlagBegins        = "Name begins with STRING"
	MsgFlagEnds          = "Name ends with STRING"
	MsgFlagContains      = "Name contains STRING (repeatable)"
	MsgFlagExcludes      = "Skip names containing STRING (repeatable)"
	MsgFlagExcludesBegin = "Skip names beginning with STRING (repeatable)"
	MsgFlagExcludesEnd   = "Skip names ending with STRING (repeatable)"
	MsgFlagNameLength    = "Name length SPEC"
	MsgFlagRegex         = "Name matches regular expression RE"
	MsgFlagPathContains  = "Directory part contains STRING (repeatable)"
	MsgFlagPathExcludes  = "Skip directory parts containing STRING (repeatable)"
	MsgFlagPathRegex     = "Path matches regular expression RE"
	MsgFlagGlob          = "Path matches doublestar PATTERN"
	MsgFlagNewer         = "Modified after PATH"
	MsgFlagOlder         = "Modified before PATH"
	MsgFlagTime          = "Modification time SPEC"
	MsgFlagSize          = "File size SPEC"
	MsgFlagPerm          = "Owner permission SPEC"
	MsgFlagAttr          = "Entry types LETTERS (d, f, h, o, uppercase for details)"
	MsgFlagRecursive     = "Descend into subdirectories"
	MsgFlagMaxDepth      = "Descend at most N levels (N > 1 implies -r)"
	MsgFlagTarget        = "Search DIR instead of the positional roots (repeatable)"
	MsgFlagIgnoreCase    = "Compare names and paths without regard to case"
	MsgFlagCaseSensitive = "Compare names and paths case sensitively"
	MsgFlagJunkPaths     = "Print base names only"
	MsgFlagNull          = "Terminate output lines with NUL"
	MsgFlagSeekQuiet     = "Print nothing, only count matches"
	MsgFlagExec          = "Run CMD for every match (% is the path, %:r without extension)"
	MsgFlagLimit         = "Stop after N matches"
	MsgFlagShowSettings  = "Print the effective settings as TOML on stderr and exit"

	// sync flag descriptions
	MsgFlagNoRecursive    = "Sync the top directory only"
	MsgFlagSyncBegins     = "Only entries whose name begins with STRING"
	MsgFlagSyncEnds       = "Only entries whose name ends with STRING"
	MsgFlagSyncContains   = "Only paths containing STRING (repeatable)"
	MsgFlagContainsFrom   = "Read --contains patterns from FILE"
	MsgFlagSyncExcludes   = "Skip paths containing STRING (repeatable)"
	MsgFlagExcludesFrom   = "Read --excludes patterns from FILE"
	MsgFlagDryRun         = "Report what would change without changing anything"
	MsgFlagForce          = "Overwrite and delete without asking"
	MsgFlagKeep           = "Never delete destination entries"
	MsgFlagUpdate         = "Treat a newer destination file as up to date"
	MsgFlagSkipEmptyDir   = "Skip empty source directories"
	MsgFlagSkipEmptyTree  = "Skip source directories whose tree holds no file"
	MsgFlagSyncIgnoreCase = "Match filters without regard to case"
	MsgFlagSyncQuiet      = "Print neither actions nor the summary"
	MsgFlagGitignore      = "Skip entries ignored by the source .gitignore"
	MsgFlagNoLock         = "Do not lock the destination"

	// which flag descriptions
	MsgFlagAll             = "List exact matches in every directory"
	MsgFlagAllPartial      = "Also list names beginning with NAME"
	MsgFlagListPaths       = "Print each searched directory"
	MsgFlagIgnoreExtension = "Drop candidate extensions before comparing"
	MsgFlagPathEnv         = "Environment variable holding the search path"

	// dirinfo flag descriptions
	MsgFlagInfoContains = "List entries whose name contains STRING (repeatable)"
	MsgFlagInfoBegins   = "List entries whose name begins with STRING"
	MsgFlagInfoEnds     = "List entries whose name ends with STRING"
	MsgFlagInfoNewer    = "List entries modified after PATH"
	MsgFlagInfoOlder    = "List entries modified before PATH"
	MsgFlagFormat       = "Output format: text, yaml, json, toml or xml"

	MsgFlagManDir = "Directory the man pages are written to"
)

// Long messages embedded from files
var (
	//go:embed msgs/root-long.txt
	msgRootLong string

	//go:embed msgs/usage-template.txt
	msgUsageTemplate string

	//go:embed msgs/seek-long.txt
	msgSeekLong string

	//go:embed msgs/seek-example.txt
	msgSeekExample string

	//go:embed msgs/sync-long.txt
	msgSyncLong string

	//go:embed msgs/sync-example.txt
	msgSyncExample string

	//go:embed msgs/which-long.txt
	msgWhichLong string

	//go:embed msgs/iftest-long.txt
	msgIftestLong string

	//go:embed msgs/completion-long.txt
	msgCompletionLong string
)

// Exported long messages with whitespace trimmed
var (
	MsgRootLong       = strings.TrimSpace(msgRootLong)
	MsgUsageTemplate  = strings.TrimSpace(msgUsageTemplate) + "\n"
	MsgSeekLong       = strings.TrimSpace(msgSeekLong)
	MsgSeekExample    = strings.TrimRight(msgSeekExample, "\n")
	MsgSyncLong       = strings.TrimSpace(msgSyncLong)
	MsgSyncExample    = strings.TrimRight(msgSyncExample, "\n")
	MsgWhichLong      = strings.TrimSpace(msgWhichLong)
	MsgIftestLong     = strings.TrimSpace(msgIftestLong)
	MsgCompletionLong = strings.TrimSpace(msgCompletionLong)
)
