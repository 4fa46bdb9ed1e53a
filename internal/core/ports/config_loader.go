package ports

import "go.trai.ch/remotex/internal/core/domain"

// ConfigLoader defines the interface for loading settings and project definitions.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadSettings reads the settings file at path and applies local and environment overrides.
	LoadSettings(path string) (*domain.Settings, error)
	// LoadProject reads and validates a single project definition.
	LoadProject(path string) (domain.Project, error)
	// LoadProjects loads every project configured in settings.
	// Definitions that fail to load are logged and skipped.
	LoadProjects(settings *domain.Settings) []domain.Project
	// ProjectPaths expands the configured project entries into sorted file paths.
	ProjectPaths(settings *domain.Settings) ([]string, error)
}
