package xmlpath

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/buildmeta/internal/xmlevent"
)

type step struct {
	ev   xmlevent.Event
	want bool
	desc string
}

var (
	startDoc = xmlevent.Event{Kind: xmlevent.StartDocument}
	endDoc   = xmlevent.Event{Kind: xmlevent.EndDocument}
	text     = xmlevent.Event{Kind: xmlevent.CharData, Text: "Some content", Raw: []byte("Some content")}
	start    = xmlevent.Start
	end      = xmlevent.End
)

func runSteps(t *testing.T, path string, steps []step) {
	t.Helper()
	m := NewMatcher(MustParse(path))
	assert.False(t, m.Matches(), "no document started")
	for i, s := range steps {
		got := m.HandleEvent(s.ev)
		assert.Equal(t, s.want, got, "step %d (%s)", i, s.desc)
		assert.Equal(t, got, m.Matches())
	}
}

func TestMatcher_RootPath(t *testing.T) {
	runSteps(t, "/", []step{
		{startDoc, true, "root must match"},
		{text, true, "still in root"},
		{start("a:html"), false, "<html>"},
		{start("a:body"), false, "<body>"},
		{end("a:body"), false, "</body>"},
		{end("a:html"), true, "</html>"},
		{endDoc, false, "end of document"},
	})
}

func TestMatcher_OneElementPath(t *testing.T) {
	runSteps(t, "/a:html", []step{
		{startDoc, false, "root must not match"},
		{text, false, "still in root"},
		{start("a:html"), true, "<html>"},
		{start("a:body"), false, "<body>"},
		{end("a:body"), true, "</body>"},
		{end("a:html"), false, "</html>"},
		{endDoc, false, "end of document"},
	})
}

func TestMatcher_PrefixMustMatch(t *testing.T) {
	runSteps(t, "/a:html", []step{
		{startDoc, false, "start"},
		{start("html"), false, "unprefixed name is a different name"},
		{end("html"), false, "</html>"},
	})
}

func TestMatcher_LongPath(t *testing.T) {
	runSteps(t, "/html/body/h1", []step{
		{startDoc, false, "root"},
		{text, false, "still in root"},
		{start("html"), false, "<html>"},
		{start("body"), false, "<body>"},
		{start("h1"), true, "<h1>"},
		{end("h1"), false, "</h1>"},
		{end("body"), false, "</body>"},
		{end("html"), false, "</html>"},
		{endDoc, false, "end of document"},
	})
}

func TestMatcher_NoMatchingPath(t *testing.T) {
	runSteps(t, "/project/properties", []step{
		{startDoc, false, "start"},
		{start("project"), false, "<project>"},
		{start("profile"), false, "<profile>"},
		{start("properties"), false, "<properties> below profile"},
		{end("properties"), false, "</properties>"},
		{end("profile"), false, "</profile>"},
		{end("project"), false, "</project>"},
		{endDoc, false, "end of document"},
	})
}

func TestMatcher_SameNameBeforeTarget(t *testing.T) {
	runSteps(t, "/project/properties", []step{
		{startDoc, false, "start"},
		{start("project"), false, "<project>"},
		{start("profile"), false, "<profile>"},
		{start("properties"), false, "<properties> below profile"},
		{end("properties"), false, "</properties>"},
		{end("profile"), false, "</profile>"},
		{start("properties"), true, "<properties> below project"},
		{end("properties"), false, "</properties>"},
		{end("project"), false, "</project>"},
		{endDoc, false, "end of document"},
	})
}

func TestMatcher_SameNameAfterTarget(t *testing.T) {
	runSteps(t, "/project/properties", []step{
		{startDoc, false, "start"},
		{start("project"), false, "<project>"},
		{start("properties"), true, "<properties> below project"},
		{start("a"), false, "<a> inside target"},
		{end("a"), true, "back in target"},
		{end("properties"), false, "</properties>"},
		{start("profiles"), false, "<profiles>"},
		{start("profile"), false, "<profile>"},
		{start("properties"), false, "<properties> deep down"},
		{end("properties"), false, "</properties>"},
		{end("profile"), false, "</profile>"},
		{end("profiles"), false, "</profiles>"},
		{end("project"), false, "</project>"},
		{endDoc, false, "end of document"},
	})
}

func TestMatcher_NestedSameNameInsideTarget(t *testing.T) {
	runSteps(t, "/project/properties", []step{
		{startDoc, false, "start"},
		{start("project"), false, "<project>"},
		{start("properties"), true, "target"},
		{start("properties"), false, "nested same name"},
		{start("properties"), false, "nested again"},
		{end("properties"), false, "one level up"},
		{end("properties"), true, "back in target"},
		{end("properties"), false, "left target"},
		{end("project"), false, "</project>"},
	})
}

func TestMatcher_ContentEventsDoNotChangeState(t *testing.T) {
	m := NewMatcher(MustParse("/project"))
	m.HandleEvent(startDoc)
	require.True(t, m.HandleEvent(start("project")))

	for _, ev := range []xmlevent.Event{text, {Kind: xmlevent.Other, Raw: []byte("<!-- c -->")}} {
		assert.True(t, m.HandleEvent(ev))
	}
	assert.Equal(t, 1, m.Depth())
}

// TestMatcher_SpanOverDocument feeds a parsed document and checks that the
// matcher reports true exactly while positioned directly in the target.
func TestMatcher_SpanOverDocument(t *testing.T) {
	doc := `<project>
  <profiles><profile><properties><p>1</p></properties></profile></profiles>
  <properties><mine>x</mine></properties>
  <build><properties/></build>
</project>`

	r := xmlevent.NewReader(strings.NewReader(doc))
	m := NewMatcher(MustParse("/project/properties"))

	var inside strings.Builder
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		before := m.Matches()
		m.HandleEvent(ev)
		// an event belongs to the target span when it is seen at target level
		if before && m.Matches() {
			inside.Write(ev.Raw)
		}
		if before && !m.Matches() && ev.Kind == xmlevent.StartElement {
			inside.Write(ev.Raw)
		}
	}

	assert.Equal(t, "<mine>", inside.String())
}
