// Package config provides the configuration system for wobl.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  5. Command Line Flags      │  ← Highest priority (applied by cmd/wobl)
//	├─────────────────────────────┤
//	│  4. WOBL_* Environment      │
//	├─────────────────────────────┤
//	│  3. .env File               │  ← never overrides the real environment
//	├─────────────────────────────┤
//	│  2. Config File             │  ← wobl.toml or wobl.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.NewLoader(config.WithFile("wobl.toml")).Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Live Reload
//
// Watch re-loads the file whenever it changes on disk and delivers the
// result on a channel. Only the frame rate is applied while running.
package config
