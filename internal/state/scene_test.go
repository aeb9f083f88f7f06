package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MentorCanvas/internal/geom"
)

func rect(id string, x, y, w, h float64) Element {
	return Element{ID: id, Kind: KindRectangle, X: x, Y: y, Width: w, Height: h, Style: DefaultStyle}
}

func TestHitTestTopMostWins(t *testing.T) {
	scene := Scene{
		rect("below", 0, 0, 100, 100),
		rect("above", 25, 25, 50, 50),
	}
	id, ok := scene.HitTest(geom.Pt(50, 50))
	require.True(t, ok)
	assert.Equal(t, "above", id)

	id, ok = scene.HitTest(geom.Pt(10, 10))
	require.True(t, ok)
	assert.Equal(t, "below", id)

	_, ok = scene.HitTest(geom.Pt(101, 50))
	assert.False(t, ok)
}

func TestHitTestUsesBoundsForEveryKind(t *testing.T) {
	for _, k := range Kinds {
		el := Element{ID: k.String(), Kind: k, X: 10, Y: 10, Width: 40, Height: 40}
		// The corner lies outside an inscribed ellipse but inside the box.
		id, ok := Scene{el}.HitTest(geom.Pt(10, 10))
		require.True(t, ok, k.String())
		assert.Equal(t, k.String(), id)

		_, ok = Scene{el}.HitTest(geom.Pt(50, 50))
		assert.True(t, ok, "far corner is inclusive for %s", k)
	}
}

func TestSceneOpsDoNotAlias(t *testing.T) {
	base := make(Scene, 2, 8)
	base[0] = rect("a", 0, 0, 10, 10)
	base[1] = rect("b", 20, 20, 10, 10)

	appended := base.Append(rect("c", 5, 5, 1, 1))
	appended2 := base.Append(rect("d", 5, 5, 1, 1))
	assert.Equal(t, "c", appended[2].ID)
	assert.Equal(t, "d", appended2[2].ID)
	assert.Len(t, base, 2)

	moved := base.Replace(base[0].MovedTo(geom.Pt(99, 99)))
	assert.Equal(t, 0.0, base[0].X)
	assert.Equal(t, 99.0, moved[0].X)
	assert.Equal(t, "a", moved[0].ID)

	removed := base.Remove("a")
	require.Len(t, removed, 1)
	assert.Equal(t, "b", removed[0].ID)
	assert.Equal(t, "a", base[0].ID)

	assert.Equal(t, base, base.Replace(rect("zzz", 0, 0, 0, 0)))
}

func TestSceneFindAndBounds(t *testing.T) {
	scene := Scene{rect("a", 0, 0, 10, 10), rect("b", 20, -5, 5, 5)}
	el, ok := scene.Find("b")
	require.True(t, ok)
	assert.Equal(t, 20.0, el.X)
	assert.False(t, scene.Contains("nope"))

	r, ok := scene.Bounds()
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 0, Y: -5, Width: 25, Height: 15}, r)

	_, ok = Scene(nil).Bounds()
	assert.False(t, ok)
}

func TestWithUniqueIDs(t *testing.T) {
	in := Scene{rect("a", 0, 0, 1, 1), rect("a", 5, 5, 1, 1), rect("", 9, 9, 1, 1), rect("b", 2, 2, 1, 1)}
	n := 0
	out := in.WithUniqueIDs(func() string { n++; return "gen-" + string(rune('0'+n)) })

	ids := make([]string, len(out))
	for i, el := range out {
		ids[i] = el.ID
	}
	assert.Equal(t, []string{"a", "gen-1", "gen-2", "b"}, ids)
	assert.Equal(t, "a", in[1].ID, "input untouched")
	assert.Nil(t, Scene(nil).WithUniqueIDs(nil))
}
