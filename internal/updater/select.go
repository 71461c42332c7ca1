// Package updater provides the implementations of buildmeta.Updater and
// the factory choosing between them.
package updater

import (
	"strings"

	"github.com/vvka-141/buildmeta/internal/xmlpath"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Kinds lists the available updaters, default first.
var Kinds = []buildmeta.UpdaterKind{buildmeta.UpdaterStreaming, buildmeta.UpdaterDocument}

// Select returns the updater named name for the element at path.
// An empty name selects the streaming updater; an unknown one is logged and
// also falls back to streaming.
func Select(name string, path xmlpath.Path, logger buildmeta.Logger) buildmeta.Updater {
	switch buildmeta.UpdaterKind(strings.ToLower(strings.TrimSpace(name))) {
	case "", buildmeta.UpdaterStreaming:
		return NewStreaming(path)
	case buildmeta.UpdaterDocument:
		logger.Verbose("Using document updater; formatting of the whole file may change")
		return NewDocument(path)
	}
	logger.Warn("Unknown updater %q, falling back to %s", name, buildmeta.UpdaterStreaming)
	return NewStreaming(path)
}
