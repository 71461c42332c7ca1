package updater

import (
	"io"

	"github.com/vvka-141/buildmeta/internal/transform"
	"github.com/vvka-141/buildmeta/internal/xmlpath"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Streaming rewrites the document in a single pass over its parse events.
// Bytes outside the managed children are copied unchanged.
type Streaming struct {
	path xmlpath.Path
}

// NewStreaming creates a streaming updater for the element at path.
func NewStreaming(path xmlpath.Path) *Streaming {
	return &Streaming{path: path}
}

func (s *Streaming) Kind() buildmeta.UpdaterKind {
	return buildmeta.UpdaterStreaming
}

func (s *Streaming) Rewrite(src io.Reader, dst io.Writer, specs []buildmeta.PropertySpec) (*buildmeta.UpdateResult, error) {
	if err := buildmeta.ValidateSpecs(specs); err != nil {
		return nil, err
	}
	t, err := transform.NewTransformer(s.path, transform.NewInjector(specs...))
	if err != nil {
		return nil, err
	}
	return t.Transform(src, dst)
}
