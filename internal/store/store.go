package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Supported storage engines.
const (
	EngineSQLite   = "sqlite"
	EngineJSON     = "json"
	EngineRedis    = "redis"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"
)

// ErrUnknownEngine is returned by Open for an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown storage engine")

// Config selects the storage engine and where it lives.
type Config struct {
	// Engine is one of sqlite, json, redis, postgres or memory. Empty means sqlite.
	Engine string

	// DSN is a file path for sqlite/json, a redis:// URL for redis and a
	// connection string for postgres. Empty means the engine default.
	DSN string

	// Logger receives recoverable load problems. Nil means slog.Default().
	Logger *slog.Logger
}

// Store bundles the key-value backend with the repositories built on it.
type Store struct {
	engine string
	kv     KV
	events EventRepo
}

// Open connects to the configured engine and prepares its schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	engine := strings.ToLower(strings.TrimSpace(cfg.Engine))
	if engine == "" {
		engine = EngineSQLite
	}

	dsn := cfg.DSN
	if dsn == "" {
		d, err := DefaultDSN(engine)
		if err != nil {
			return nil, err
		}
		dsn = d
	}

	s := &Store{engine: engine, events: discardEventRepo{}}

	switch engine {
	case EngineSQLite:
		kv, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		s.kv = kv
		s.events = &sqliteEventRepo{db: kv.DB()}
	case EngineJSON:
		kv, err := NewJSONKV(dsn, cfg.Logger)
		if err != nil {
			return nil, err
		}
		s.kv = kv
	case EngineRedis:
		kv, err := NewRedisKV(ctx, dsn)
		if err != nil {
			return nil, err
		}
		s.kv = kv
	case EnginePostgres:
		kv, err := NewPostgresKV(ctx, dsn)
		if err != nil {
			return nil, err
		}
		s.kv = kv
	case EngineMemory:
		s.kv = NewMemoryKV()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
	}

	return s, nil
}

// Engine returns the name of the active engine.
func (s *Store) Engine() string {
	return s.engine
}

// KV returns the raw key-value backend.
func (s *Store) KV() KV {
	return s.kv
}

// StateRepo returns the progress repository backed by this store.
func (s *Store) StateRepo() *StateRepo {
	return NewStateRepo(s.kv)
}

// CredentialRepo returns the API credential repository backed by this store.
func (s *Store) CredentialRepo() *CredentialRepo {
	return NewCredentialRepo(s.kv)
}

// EventRepo returns the LLM event log. Only the sqlite engine records events;
// other engines discard them.
func (s *Store) EventRepo() EventRepo {
	return s.events
}

// Close releases the backend connection.
func (s *Store) Close() error {
	return s.kv.Close()
}

// DefaultDSN returns the default location for an engine.
func DefaultDSN(engine string) (string, error) {
	switch engine {
	case EngineSQLite:
		return DefaultDBPath()
	case EngineJSON:
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		p := filepath.Join(dir, "quantpath.json")
		return p, EnsureDir(p)
	case EngineRedis:
		if u := os.Getenv("QUANTPATH_REDIS_URL"); u != "" {
			return u, nil
		}
		return "redis://localhost:6379/0", nil
	case EnginePostgres:
		if u := os.Getenv("QUANTPATH_POSTGRES_DSN"); u != "" {
			return u, nil
		}
		return "", fmt.Errorf("QUANTPATH_POSTGRES_DSN is required for the postgres engine")
	case EngineMemory:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUANTPATH_DB environment variable
// 2. $XDG_DATA_HOME/quantpath/quantpath.db
// 3. ~/.local/share/quantpath/quantpath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUANTPATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "quantpath.db")
	return p, EnsureDir(p)
}

// DataDir returns the quantpath data directory under XDG_DATA_HOME.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quantpath"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
