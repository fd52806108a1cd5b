package config

// Model is the unified, format-agnostic representation of a run
// configuration file.
type Model struct {
	// Inputs are report files or directories. Relative entries have already
	// been resolved against the configuration file's directory.
	Inputs []string
	// Workers is zero when the file does not set it.
	Workers int
	Output  Output
	Logging Logging
	// MetricsFile is where run metrics are written, if anywhere.
	MetricsFile string
}

// Output selects how and where the aggregation result is written.
type Output struct {
	Format string
	File   string
}

// Logging selects the log level and handler format.
type Logging struct {
	Level  string
	Format string
}
