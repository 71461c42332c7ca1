package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/buildmeta/internal/files/filesystem"
	"github.com/vvka-141/buildmeta/internal/logging"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

const pom = `<project>
  <properties>
    <build.number.current>41</build.number.current>
  </properties>
</project>
`

const updatedPom = `<project>
  <properties>
    <build.number.current>42</build.number.current>
    <build.date.current>23.12.2006</build.date.current>
  </properties>
</project>
`

func newService(t *testing.T) (*UpdateService, *filesystem.MemoryFileSystem, *bytes.Buffer) {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("pom.xml", pom)
	var log bytes.Buffer
	return NewUpdateService(mfs, logging.NewConsoleLoggerTo(&log, false)), mfs, &log
}

func config() buildmeta.UpdateConfig {
	return buildmeta.UpdateConfig{
		Descriptor:  "/work/pom.xml",
		ElementPath: "/project/properties",
		Properties: []buildmeta.PropertySpec{
			buildmeta.Increment("build.number.current"),
			buildmeta.Replace("build.date.current", "23.12.2006"),
		},
	}
}

func TestNewUpdateService_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewUpdateService(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewUpdateService(filesystem.NewMemoryFileSystem("/"), nil) })
}

func TestUpdate_WritesFileAndBackup(t *testing.T) {
	svc, mfs, _ := newService(t)

	report, err := svc.Update(config())
	require.NoError(t, err)

	data, err := mfs.ReadFile("/work/pom.xml")
	require.NoError(t, err)
	assert.Equal(t, updatedPom, string(data))

	backup, err := mfs.ReadFile("/work/pom-backup.xml")
	require.NoError(t, err)
	assert.Equal(t, pom, string(backup))

	assert.Equal(t, "/work/pom-backup.xml", report.BackupPath)
	assert.Equal(t, buildmeta.UpdaterStreaming, report.Updater)
	assert.Equal(t, "/project/properties", report.ElementPath)
	outcome, ok := report.Result.Outcome("build.number.current")
	require.True(t, ok)
	assert.Equal(t, "41", outcome.Previous)
	assert.Equal(t, "42", outcome.Value)
}

func TestUpdate_DryRunLeavesFileAlone(t *testing.T) {
	svc, mfs, _ := newService(t)
	cfg := config()
	cfg.DryRun = true

	report, err := svc.Update(cfg)
	require.NoError(t, err)

	assert.Equal(t, pom, string(report.Before))
	assert.Equal(t, updatedPom, string(report.After))
	assert.Empty(t, report.BackupPath)
	assert.Equal(t, []string{"/work/pom.xml"}, mfs.Paths())
}

func TestUpdate_DocumentUpdater(t *testing.T) {
	svc, mfs, _ := newService(t)
	cfg := config()
	cfg.Updater = "document"

	report, err := svc.Update(cfg)
	require.NoError(t, err)

	assert.Equal(t, buildmeta.UpdaterDocument, report.Updater)
	data, err := mfs.ReadFile("/work/pom.xml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<build.number.current>42</build.number.current>")
	assert.Contains(t, string(data), "<build.date.current>23.12.2006</build.date.current>")
}

func TestUpdate_WarnsWhenTargetMissing(t *testing.T) {
	svc, mfs, log := newService(t)
	mfs.AddFile("settings.xml", "<settings/>")
	cfg := config()
	cfg.Descriptor = "/work/settings.xml"

	_, err := svc.Update(cfg)
	require.NoError(t, err)

	assert.Contains(t, log.String(), "[WARN] Element /project/properties not found in /work/settings.xml")
}

func TestUpdate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*buildmeta.UpdateConfig, *filesystem.MemoryFileSystem)
		kind   error
	}{
		{
			name:   "relative path",
			mutate: func(c *buildmeta.UpdateConfig, _ *filesystem.MemoryFileSystem) { c.ElementPath = "project/properties" },
			kind:   buildmeta.ErrInvalidPath,
		},
		{
			name:   "no properties",
			mutate: func(c *buildmeta.UpdateConfig, _ *filesystem.MemoryFileSystem) { c.Properties = nil },
			kind:   buildmeta.ErrInvalidConfig,
		},
		{
			name: "corrupt counter",
			mutate: func(_ *buildmeta.UpdateConfig, m *filesystem.MemoryFileSystem) {
				m.AddFile("pom.xml", "<project><properties><build.number.current>n/a</build.number.current></properties></project>")
			},
			kind: buildmeta.ErrNotANumber,
		},
		{
			name: "malformed",
			mutate: func(_ *buildmeta.UpdateConfig, m *filesystem.MemoryFileSystem) {
				m.AddFile("pom.xml", "<project><properties></project>")
			},
			kind: buildmeta.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mfs, _ := newService(t)
			cfg := config()
			tt.mutate(&cfg, mfs)
			before, _ := mfs.ReadFile("/work/pom.xml")

			_, err := svc.Update(cfg)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			after, _ := mfs.ReadFile("/work/pom.xml")
			assert.Equal(t, string(before), string(after), "descriptor must be untouched")
		})
	}
}

func TestUpdate_ParseErrorNamesFile(t *testing.T) {
	svc, mfs, _ := newService(t)
	mfs.AddFile("pom.xml", "<project>\n<properties>\n</project>")
	cfg := config()
	cfg.DryRun = true

	_, err := svc.Update(cfg)

	var docErr *buildmeta.DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "/work/pom.xml", docErr.FilePath)
	assert.Equal(t, 3, docErr.Line)
}

func TestShow(t *testing.T) {
	svc, _, _ := newService(t)

	snap, err := svc.Show("/work/pom.xml", "/project/properties")
	require.NoError(t, err)

	assert.True(t, snap.Found)
	value, ok := snap.Lookup("build.number.current")
	assert.True(t, ok)
	assert.Equal(t, "41", value)
	_, ok = snap.Lookup("build.date.current")
	assert.False(t, ok)
}

func TestShow_Errors(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Show("/work/pom.xml", "")
	assert.True(t, errors.Is(err, buildmeta.ErrInvalidPath))

	_, err = svc.Show("/work/missing.xml", "/project/properties")
	assert.Error(t, err)
}
