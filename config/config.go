// Package config holds the single process-wide, init-once tunable
// knobs the parallel engine and (external, non-core) parsers read.
//
// Grounded on katalvlaran/lvlath's flow.FlowOptions: a plain struct of
// tunables passed by value/pointer, no env/file parsing, installed
// once and read by the algorithm that cares about it.
package config

import "sync/atomic"

// Config is dxframe's process-wide tunable set.
//   - RowSplitThreshold/ColSplitThreshold: a parallel task with more
//     than this many ordinals splits at the midpoint; at or below it,
//     it runs sequentially on the calling goroutine.
//   - NullTokens: string tokens an (external, non-core) parser should
//     treat as a null cell. Not consulted by anything in this module;
//     carried here so a CSV/JSON adapter built on top of dxframe has
//     one place to read it from.
type Config struct {
	RowSplitThreshold int
	ColSplitThreshold int
	NullTokens        []string
}

// Default returns dxframe's baked-in defaults.
func Default() Config {
	return Config{
		RowSplitThreshold: 10_000,
		ColSplitThreshold: 100,
		NullTokens:        []string{"", "NA", "N/A", "null"},
	}
}

var global atomic.Pointer[Config]

func init() {
	cfg := Default()
	global.Store(&cfg)
}

// SetGlobal installs cfg as the process-wide configuration. Per spec,
// there is no late-reconfiguration protection during an in-flight bulk
// op: callers that call SetGlobal concurrently with a running parallel
// operation get undefined split-threshold behavior for that operation,
// documented rather than enforced with a lock.
func SetGlobal(cfg Config) {
	c := cfg
	global.Store(&c)
}

// Global returns the current process-wide configuration.
func Global() Config {
	return *global.Load()
}
