package cli

// Cache backends accepted by --cache.
const (
	CacheNone   = ""
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

// Options carries the flags shared by the generation commands.
type Options struct {
	// Dir is the grammar library. Empty disables library lookups.
	Dir   string
	Debug bool

	Cache     string
	RedisAddr string
	SQLite    string

	// Metrics attaches Prometheus hooks; see Generator.Metrics.
	Metrics bool
}

// Selection picks the grammar a command works on. Exactly one of Recipe,
// File or Name must be set.
type Selection struct {
	Recipe string
	File   string
	Name   string
	Label  string

	// Iterations overrides the grammar's iteration count when not negative.
	Iterations int
}
