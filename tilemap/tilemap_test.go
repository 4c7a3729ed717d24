package tilemap

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tilepath/core"
)

func TestParse_MarkersAndWalls(t *testing.T) {
	layout, err := Parse(`
S.#
.X.
..T`)
	require.NoError(t, err)

	assert.True(t, layout.HasStart)
	assert.True(t, layout.HasTarget)
	assert.Equal(t, core.Cell{X: 0, Y: 0}, layout.Start)
	assert.Equal(t, core.Cell{X: 2, Y: 2}, layout.Target)

	w, h, ok := layout.Map.Bounds()
	require.True(t, ok)
	assert.Equal(t, 3, w)
	assert.Equal(t, 3, h)

	assert.True(t, layout.Map.IsImpassable(core.Cell{X: 2, Y: 0}))
	assert.True(t, layout.Map.IsImpassable(core.Cell{X: 1, Y: 1}))
	assert.False(t, layout.Map.IsImpassable(layout.Start))
	assert.False(t, layout.Map.IsImpassable(layout.Target))
	assert.Equal(t, []core.Cell{{X: 2, Y: 0}, {X: 1, Y: 1}}, layout.Map.Blocked())
}

func TestParse_OutOfBoundsIsImpassable(t *testing.T) {
	layout, err := Parse("...\n.")
	require.NoError(t, err)

	assert.False(t, layout.Map.IsImpassable(core.Cell{X: 2, Y: 1}), "short rows pad open")
	assert.True(t, layout.Map.IsImpassable(core.Cell{X: -1, Y: 0}))
	assert.True(t, layout.Map.IsImpassable(core.Cell{X: 3, Y: 0}))
	assert.True(t, layout.Map.IsImpassable(core.Cell{X: 0, Y: 2}))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown rune", "..?"},
		{"duplicate start", "S.S"},
		{"duplicate target", "T\nT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse))
		})
	}
}

func TestTilemap_SetClearUnbounded(t *testing.T) {
	m := New()
	c := core.Cell{X: -40, Y: 1000}

	assert.False(t, m.IsImpassable(c))
	m.Set(c)
	assert.True(t, m.IsImpassable(c))
	m.Clear(c)
	assert.False(t, m.IsImpassable(c))

	_, _, ok := m.Bounds()
	assert.False(t, ok)
}

func TestTilemap_SetIgnoresOutOfBounds(t *testing.T) {
	m := NewBounded(2, 2)
	m.Set(core.Cell{X: 5, Y: 5})
	assert.Empty(t, m.Blocked())
}

func TestTilemap_String(t *testing.T) {
	input := "#..\n.#.\n..#"
	layout, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, input, layout.Map.String())

	m := New()
	m.Set(core.Cell{X: -1, Y: -1})
	m.Set(core.Cell{X: 0, Y: 0})
	assert.Equal(t, "#.\n.#", m.String())
}

func TestTilemap_ApplyBatch(t *testing.T) {
	m := NewBounded(4, 1)
	m.Set(core.Cell{X: 0, Y: 0})

	n := m.Apply([]core.Cell{{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 9, Y: 0}}, []core.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}})

	assert.Equal(t, 4, n, "out of bounds cells are not counted")
	assert.Equal(t, []core.Cell{{X: 1, Y: 0}, {X: 2, Y: 0}}, m.Blocked(), "block wins over clear")
}

func TestTilemap_ReadHoldsOffWriters(t *testing.T) {
	m := NewBounded(3, 1)
	c := core.Cell{X: 1, Y: 0}
	entered := make(chan struct{})
	applied := make(chan struct{})

	m.Read(func(v View) {
		go func() {
			close(entered)
			m.Apply([]core.Cell{c}, nil)
			close(applied)
		}()
		<-entered
		time.Sleep(20 * time.Millisecond)

		select {
		case <-applied:
			t.Error("edit landed while a read was in progress")
		default:
		}
		assert.False(t, v.IsImpassable(c))
		assert.True(t, v.IsImpassable(core.Cell{X: 3, Y: 0}))
	})

	<-applied
	assert.True(t, m.IsImpassable(c))
}
