package programdetails

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_PutGetEvict(t *testing.T) {
	sessions := NewSessionStore(2, time.Minute)
	store := &fakeStore{}

	a := New(newTestProgram(), store, WithID("a"))
	b := New(newTestProgram(), store, WithID("b"))
	c := New(newTestProgram(), store, WithID("c"))

	sessions.Put(a)
	sessions.Put(b)
	_, ok := sessions.Get("a")
	require.True(t, ok)

	sessions.Put(c)
	assert.Equal(t, 2, sessions.Len())
	_, ok = sessions.Get("b")
	assert.False(t, ok, "least recently used view is dropped")

	got, ok := sessions.Get("c")
	require.True(t, ok)
	assert.Same(t, c, got)

	sessions.Remove("a")
	_, ok = sessions.Get("a")
	assert.False(t, ok)
}

func TestSessionStore_Expires(t *testing.T) {
	sessions := NewSessionStore(10, 20*time.Millisecond)
	sessions.Put(New(newTestProgram(), &fakeStore{}, WithID("short")))

	assert.Eventually(t, func() bool {
		_, ok := sessions.Get("short")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNew_GeneratesDistinctIDs(t *testing.T) {
	a := New(newTestProgram(), &fakeStore{})
	b := New(newTestProgram(), &fakeStore{})
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRenderPage(t *testing.T) {
	v, _ := newTestView(t)

	var buf bytes.Buffer
	require.NoError(t, v.RenderPage(&buf, PageData{
		Username: "staff",
		EventURL: "/programs/views/view-1/events",
		LiveURL:  "/programs/7/live",
	}))

	out := buf.String()
	assert.Contains(t, out, "<title>Supply Chain | Programs</title>")
	assert.Contains(t, out, `data-event-url="/programs/views/view-1/events"`)
	assert.Contains(t, out, `id="program-details"`)
	assert.Contains(t, out, "SKU-V")
	assert.Contains(t, out, "2016-09-01")
}

func TestRender_EscapesUserInput(t *testing.T) {
	v, _ := newTestView(t)
	require.NoError(t, v.EnableEdit("name"))
	require.NoError(t, v.Input("name", `<script>alert(1)</script>`))

	out, err := v.HTML()
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
