package ports

import "go.trai.ch/glean/internal/core/domain"

// ConfigLoader loads the analysis settings, layering any glean.yaml found
// by walking up from the working directory over the built-in defaults.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	Load(cwd string) (domain.Settings, error)
}
