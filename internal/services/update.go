package services

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vvka-141/buildmeta/internal/files/filesystem"
	"github.com/vvka-141/buildmeta/internal/replace"
	"github.com/vvka-141/buildmeta/internal/transform"
	"github.com/vvka-141/buildmeta/internal/updater"
	"github.com/vvka-141/buildmeta/internal/xmlpath"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// UpdateService updates descriptors and reports their managed properties.
// Thread-Safety: safe for concurrent use on different descriptors. Two
// concurrent updates of the same file race on its backup and rename.
type UpdateService struct {
	fs       filesystem.FileSystem
	logger   buildmeta.Logger
	replacer *replace.Replacer
}

// NewUpdateService creates a new UpdateService with all dependencies injected.
// Panics on nil dependencies: these are programmer errors.
func NewUpdateService(fs filesystem.FileSystem, logger buildmeta.Logger) *UpdateService {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &UpdateService{
		fs:       fs,
		logger:   logger,
		replacer: replace.NewReplacer(fs, logger),
	}
}

// Update rewrites cfg.Descriptor so that the element at cfg.ElementPath holds
// cfg.Properties. With cfg.DryRun the descriptor is only read and the report
// carries the document before and after.
func (s *UpdateService) Update(cfg buildmeta.UpdateConfig) (*buildmeta.UpdateReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	path, err := xmlpath.Parse(cfg.ElementPath)
	if err != nil {
		return nil, err
	}

	u := updater.Select(cfg.Updater, path, s.logger)
	report := &buildmeta.UpdateReport{
		Descriptor:  cfg.Descriptor,
		ElementPath: path.String(),
		Updater:     u.Kind(),
		DryRun:      cfg.DryRun,
	}
	s.logger.Verbose("Updating %s at %s with the %s updater", cfg.Descriptor, path, u.Kind())

	if cfg.DryRun {
		before, err := s.fs.ReadFile(cfg.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", cfg.Descriptor, err)
		}
		var after bytes.Buffer
		result, err := u.Rewrite(bytes.NewReader(before), &after, cfg.Properties)
		if err != nil {
			return nil, buildmeta.WithFile(err, cfg.Descriptor)
		}
		report.Result = result
		report.Before = before
		report.After = after.Bytes()
	} else {
		err := s.replacer.Replace(cfg.Descriptor, func(src io.Reader, dst io.Writer) error {
			result, err := u.Rewrite(src, dst, cfg.Properties)
			report.Result = result
			return err
		})
		if err != nil {
			return nil, err
		}
		report.BackupPath = replace.BackupPath(cfg.Descriptor)
	}

	if len(report.Result.Properties) == 0 {
		s.logger.Warn("Element %s not found in %s; nothing was changed", path, cfg.Descriptor)
	}
	return report, nil
}

// Show reads the current children of the element at elementPath.
func (s *UpdateService) Show(descriptor, elementPath string) (*buildmeta.Snapshot, error) {
	path, err := xmlpath.Parse(elementPath)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", descriptor, err)
	}
	defer f.Close()

	props, found, err := transform.Inspect(f, path)
	if err != nil {
		return nil, buildmeta.WithFile(err, descriptor)
	}
	return &buildmeta.Snapshot{
		Descriptor:  descriptor,
		ElementPath: path.String(),
		Found:       found,
		Properties:  props,
	}, nil
}
