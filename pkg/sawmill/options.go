package sawmill

type options struct {
	dbPath           string
	patterns         []Pattern
	globalFirstMatch bool
}

// Option configures a Sawmill instance.
type Option func(*options)

// WithDatabase backs the instance with a SQLite pattern database, creating
// it (and parent directories) if absent. Mutually exclusive with
// WithPatterns.
func WithDatabase(path string) Option {
	return func(o *options) {
		o.dbPath = path
	}
}

// WithPatterns runs the instance over a fixed in-memory pattern list.
// Patterns without an ID are assigned sequential ones. AddPattern still
// works but additions are lost when the instance goes away.
func WithPatterns(patterns []Pattern) Option {
	return func(o *options) {
		o.patterns = patterns
	}
}

// WithGlobalFirstMatch makes embedding attribute each line to at most one
// utility, the same policy Classify uses. The default scans each utility's
// pattern list independently, so a line matching patterns of several
// utilities counts toward all of them.
func WithGlobalFirstMatch() Option {
	return func(o *options) {
		o.globalFirstMatch = true
	}
}

func defaultOptions() options {
	return options{}
}
