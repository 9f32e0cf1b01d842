package app

import "go.trai.ch/glean/internal/core/ports"

// Components bundles the fully wired application with the adapters the
// CLI and tests need direct access to.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
	Cache        ports.ResultCache
}
