package config

import "time"

// Config is the merged configuration. Treat it as read-only once loaded.
type Config struct {
	Seek    Seek    `koanf:"seek"`
	Sync    Sync    `koanf:"sync"`
	Which   Which   `koanf:"which"`
	Output  Output  `koanf:"output"`
	Logging Logging `koanf:"logging"`

	// Source lists the config files that were read
	Source []string `koanf:"-"`
}

// Seek holds the finder defaults
type Seek struct {
	Preset          string `koanf:"preset"`
	IgnoreCase      bool   `koanf:"ignore_case"`
	Recursive       bool   `koanf:"recursive"`
	CountExitStatus bool   `koanf:"count_exit_status"`
	Shell           string `koanf:"shell"`
}

// Sync holds the synchronizer defaults
type Sync struct {
	BufferSize int  `koanf:"buffer_size"`
	Lock       bool `koanf:"lock"`
	// LockWait is how long a sync waits for a busy destination lock
	LockWait time.Duration `koanf:"lock_wait"`
}

// Which holds the program lookup defaults
type Which struct {
	Extensions      []string `koanf:"extensions"`
	IgnoreExtension bool     `koanf:"ignore_extension"`
	PathEnv         string   `koanf:"path_env"`
}

// Output controls terminal rendering
type Output struct {
	Color string `koanf:"color"`
}

// Logging controls the log file writer
type Logging struct {
	File bool `koanf:"file"`
}
