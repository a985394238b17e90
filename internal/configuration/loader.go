package configuration

import (
	"fmt"
	"log/slog"

	"floodnet/internal/configuration/properties"
	"floodnet/internal/configuration/util"

	"gopkg.in/yaml.v3"
)

// Load reads application.yml from baseDir and overlays
// application-<profile>.yml. A non-empty profile argument overrides the
// profile named in the base file; an empty resulting profile skips the overlay.
func Load(baseDir, profile string) (*properties.Config, error) {
	cfg, err := loadBaseConfig(baseDir)
	if err != nil {
		return nil, err
	}

	if profile != "" {
		cfg.Application.Profile = profile
	}
	if cfg.Application.Profile == "" {
		return cfg, nil
	}

	if err := loadProfileConfig(baseDir, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadBaseConfig(baseDir string) (*properties.Config, error) {
	baseConfig, err := util.LoadAndExpandYaml(baseDir, "application")
	if err != nil {
		slog.Error("Error loading base config", "Error", err.Error())
		return nil, err
	}

	cfg := properties.Config{}
	if err := yaml.Unmarshal([]byte(baseConfig), &cfg); err != nil {
		slog.Error("Error parsing base config", "Error", err.Error())
		return nil, fmt.Errorf("parse application.yml: %w", err)
	}

	return &cfg, nil
}

func loadProfileConfig(baseDir string, cfg *properties.Config) error {
	profile := cfg.Application.Profile
	profileConfig, err := util.LoadAndExpandYaml(baseDir, "application-"+profile)
	if err != nil {
		slog.Error("Error loading profile config", "profile", profile, "Error", err.Error())
		return fmt.Errorf("profile %q: %w", profile, err)
	}

	if err := yaml.Unmarshal([]byte(profileConfig), cfg); err != nil {
		slog.Error("Error parsing profile config", "profile", profile, "Error", err.Error())
		return fmt.Errorf("parse profile %q: %w", profile, err)
	}

	// The overlay may not rename the active profile.
	cfg.Application.Profile = profile
	return nil
}
