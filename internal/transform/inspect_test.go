package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/buildmeta/internal/xmlpath"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

func TestInspect(t *testing.T) {
	src := `<project>
  <profiles><profile><properties><build.number.current>7</build.number.current></properties></profile></profiles>
  <properties>
    <build.number.current> 41 </build.number.current>
    <note>a &amp; <b>b</b></note>
    <empty/>
  </properties>
</project>`

	props, found, err := Inspect(strings.NewReader(src), xmlpath.MustParse("/project/properties"))

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []buildmeta.Property{
		{Name: "build.number.current", Value: "41"},
		{Name: "note", Value: "a & b"},
		{Name: "empty", Value: ""},
	}, props)
}

func TestInspect_NotFound(t *testing.T) {
	props, found, err := Inspect(strings.NewReader(`<project><name>x</name></project>`), xmlpath.MustParse("/project/properties"))

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, props)
}

func TestInspect_EmptyTarget(t *testing.T) {
	props, found, err := Inspect(strings.NewReader(`<project><properties/></project>`), xmlpath.MustParse("/project/properties"))

	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, props)
}

func TestInspect_ParseError(t *testing.T) {
	_, found, err := Inspect(strings.NewReader(`<project><properties><a></properties>`), xmlpath.MustParse("/project/properties"))

	require.Error(t, err)
	assert.False(t, found)
	assert.True(t, errors.Is(err, buildmeta.ErrParse))
}
