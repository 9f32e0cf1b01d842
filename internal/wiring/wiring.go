// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/glean/internal/adapters/cache"
	_ "go.trai.ch/glean/internal/adapters/config"
	_ "go.trai.ch/glean/internal/adapters/fingerprint"
	_ "go.trai.ch/glean/internal/adapters/gemini"
	_ "go.trai.ch/glean/internal/adapters/logger"
	_ "go.trai.ch/glean/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/glean/internal/adapters/transcript"
	// Register app and engine nodes.
	_ "go.trai.ch/glean/internal/app"
	_ "go.trai.ch/glean/internal/engine/scheduler"
)
