package config

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// loadDotenv loads a .env file from the working directory exactly once per
// process, ahead of the first Load/MustLoad call. A missing .env file is
// not an error: environment variables set by the process's actual
// environment are equally valid.
func loadDotenv() {
	dotenvOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "config: .env load: %v\n", err)
		}
	})
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)
)

// Load parses environment variables into cfg using caarlos0/env's struct
// tags, caching the result by cfg's concrete type so repeated calls for the
// same configuration type across unrelated packages return the identical
// value instead of re-parsing the environment.
func Load[T any](cfg *T) error {
	loadDotenv()

	t := reflect.TypeOf(*cfg)

	cacheMu.RLock()
	if v, ok := cache[t]; ok {
		cacheMu.RUnlock()
		*cfg = v.(T)
		return nil
	}
	cacheMu.RUnlock()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if v, ok := cache[t]; ok { // re-check: another goroutine may have loaded it
		*cfg = v.(T)
		return nil
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}
	cache[t] = *cfg
	return nil
}

// MustLoad is Load, panicking on failure. Intended for startup paths where a
// misconfigured environment should abort the process immediately.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
