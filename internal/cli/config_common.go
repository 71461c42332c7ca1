package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vvka-141/buildmeta/internal/config"
	"github.com/vvka-141/buildmeta/internal/files/filesystem"
	"github.com/vvka-141/buildmeta/internal/metadata"
	"github.com/vvka-141/buildmeta/internal/params"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// descriptorFlags holds the flags shared by commands that read a descriptor.
type descriptorFlags struct {
	file string
	path string
}

// settings is the effective configuration of one command run.
type settings struct {
	Descriptor  string
	ElementPath string
	Updater     string
	Options     metadata.Options
}

// resolveSettings merges defaults, buildmeta.yaml, the environment and flags.
// Priority (highest to lowest): flags > BUILDMETA_* env > buildmeta.yaml > defaults
func resolveSettings(dir string, desc descriptorFlags, upd updateFlagValues, logger buildmeta.Logger) (*settings, error) {
	projectCfg, err := loadProjectConfig(dir)
	if err != nil {
		return nil, err
	}
	if projectCfg == nil {
		logger.Verbose("No %s in %s, using defaults", config.ConfigFileName, dir)
	}
	cfg := projectCfg.WithDefaults()

	if v := strings.TrimSpace(os.Getenv(buildmeta.EnvUpdater)); v != "" {
		logger.Verbose("%s overrides updater: %s", buildmeta.EnvUpdater, v)
		cfg.Updater = v
	}

	if desc.file != "" {
		cfg.Descriptor = desc.file
	}
	if desc.path != "" {
		cfg.Path = desc.path
	}
	if upd.updater != "" {
		cfg.Updater = upd.updater
	}
	if upd.datePattern != "" {
		cfg.DatePattern = upd.datePattern
	}

	extra, err := loadMergedProperties(cfg.Extra, upd.propertyFiles, upd.properties, logger)
	if err != nil {
		return nil, err
	}

	return &settings{
		Descriptor:  resolveDescriptor(dir, cfg.Descriptor),
		ElementPath: cfg.Path,
		Updater:     cfg.Updater,
		Options: metadata.Options{
			BuildNumberProperty: cfg.Properties.BuildNumber,
			BuildDateProperty:   cfg.Properties.BuildDate,
			BuildYearProperty:   cfg.BuildYearProperty(),
			DatePattern:         cfg.DatePattern,
			BuildNumber:         strings.TrimSpace(os.Getenv(buildmeta.EnvBuildNumber)),
			Extra:               extra,
		},
	}, nil
}

// loadProjectConfig loads the project's .env file and buildmeta.yaml.
// Returns nil config if buildmeta.yaml does not exist (not an error).
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveDescriptor interprets a relative descriptor path against the project directory.
func resolveDescriptor(dir, descriptor string) string {
	if filepath.IsAbs(descriptor) {
		return descriptor
	}
	return filepath.Join(dir, descriptor)
}

// loadMergedProperties loads and merges extra properties from all sources.
// Priority (highest to lowest): --property > --property-file > buildmeta.yaml
func loadMergedProperties(
	base map[string]string,
	propertyFiles []string,
	pairs []string,
	logger buildmeta.Logger,
) (map[string]string, error) {
	merged := make(map[string]string, len(base))
	for k, v := range base {
		merged[k] = v
	}

	if len(propertyFiles) > 0 {
		fileProps, err := loadPropertiesFromFiles(filesystem.NewOSFileSystem(), propertyFiles, logger)
		if err != nil {
			return nil, err
		}
		for k, v := range fileProps {
			merged[k] = v
		}
	}

	cliProps, err := params.ParseKeyValuePairs(pairs)
	if err != nil {
		return nil, fmt.Errorf("invalid property format: %w", errors.Join(buildmeta.ErrInvalidConfig, err))
	}
	for k, v := range cliProps {
		merged[k] = v
	}
	if len(cliProps) > 0 {
		logger.Verbose("CLI properties override %d value(s)", len(cliProps))
	}

	return merged, nil
}

// loadPropertiesFromFiles loads properties from .env formatted files.
// Later files override earlier ones.
func loadPropertiesFromFiles(fsys filesystem.FileSystem, files []string, logger buildmeta.Logger) (map[string]string, error) {
	merged := make(map[string]string)

	for _, file := range files {
		logger.Verbose("Loading properties from file: %s", file)

		content, err := fsys.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read property file '%s': %w\n\nTip: Verify the path or use --property to set values directly:\n  buildmeta update --property build.host=ci-01", file, err)
		}

		fileProps, err := params.ParseEnvFile(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse property file '%s': %w", file, errors.Join(buildmeta.ErrInvalidConfig, err))
		}

		for k, v := range fileProps {
			merged[k] = v
		}
		logger.Verbose("Loaded %d properties from file (total: %d)", len(fileProps), len(merged))
	}

	return merged, nil
}
