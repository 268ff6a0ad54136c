package routing

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMap(t *testing.T, yamlBody string, pixels []byte, w, h int) string {
	t.Helper()
	dir := t.TempDir()
	pgm := append([]byte("P5\n"+strconv.Itoa(w)+" "+strconv.Itoa(h)+"\n255\n"), pixels...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.pgm"), pgm, 0644))
	yamlFile := filepath.Join(dir, "map.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(yamlBody), 0644))
	return yamlFile
}

const rosYaml = `image: map.pgm
resolution: 0.5
origin: [-1.0, -1.0, 0.0]
negate: 0
occupied_thresh: 0.65
free_thresh: 0.196
`

func TestReadMapImage(t *testing.T) {
	yamlFile := writeMap(t, rosYaml, []byte{
		254, 0, 254,
		254, 205, 254,
	}, 3, 2)

	m, err := ReadMapImage(yamlFile)
	require.NoError(t, err)
	assert.Equal(t, 3, m.W)
	assert.Equal(t, 2, m.H)
	assert.Equal(t, 0.5, m.Reso)
	assert.Equal(t, Point{X: -1, Y: -1}, m.Origin)
	assert.Equal(t, []int8{0, Occupied, 0, 0, Unknown, 0}, m.Data)

	g, err := m.Grid()
	require.NoError(t, err)
	assert.Equal(t, "_#_\n_#_\n", g.Dump(nil))

	p := FindPath(g, Coord{0, 0}, Coord{0, 2})
	assert.Empty(t, p)
}

func TestReadMapImageNegate(t *testing.T) {
	yamlFile := writeMap(t, "image: map.pgm\nresolution: 1\norigin: [0, 0, 0]\nnegate: 1\n", []byte{
		254, 0,
	}, 2, 1)
	m, err := ReadMapImage(yamlFile)
	require.NoError(t, err)
	assert.Equal(t, []int8{Occupied, 0}, m.Data)
}

func TestMapPositions(t *testing.T) {
	m := &MapMeta{W: 3, H: 2, Reso: 0.5, Origin: Point{X: -1, Y: -1}}

	x, y := m.Ind2Pos(Coord{0, 2})
	assert.InDelta(t, 0.25, x, 1e-9)
	assert.InDelta(t, -0.25, y, 1e-9)

	c, ok := m.Pos2Ind(x, y)
	assert.True(t, ok)
	assert.Equal(t, Coord{0, 2}, c)

	c, ok = m.Pos2Ind(-0.9, -0.9)
	assert.True(t, ok)
	assert.Equal(t, Coord{1, 0}, c)

	_, ok = m.Pos2Ind(-2, 0)
	assert.False(t, ok)

	route := m.Route2Pos(Path{{1, 0}, {0, 0}})
	require.Len(t, route, 2)
	assert.InDelta(t, -0.75, route[0][0], 1e-9)
	assert.InDelta(t, -0.75, route[0][1], 1e-9)
	assert.InDelta(t, -0.25, route[1][1], 1e-9)
}

func TestReadMapImageErrors(t *testing.T) {
	_, err := ReadMapImage(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, ErrIOFailure)

	yamlFile := writeMap(t, "image: other.pgm\nresolution: 1\norigin: [0, 0, 0]\n", []byte{0}, 1, 1)
	_, err = ReadMapImage(yamlFile)
	assert.ErrorIs(t, err, ErrIOFailure)

	yamlFile = writeMap(t, "resolution: 1\norigin: [0, 0, 0]\n", []byte{0}, 1, 1)
	_, err = ReadMapImage(yamlFile)
	assert.ErrorIs(t, err, ErrMalformedInput)

	yamlFile = writeMap(t, "image: map.pgm\nresolution: [1\n", []byte{0}, 1, 1)
	_, err = ReadMapImage(yamlFile)
	assert.ErrorIs(t, err, ErrMalformedInput)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.pgm"), []byte("not an image"), 0644))
	yamlFile = filepath.Join(dir, "map.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(rosYaml), 0644))
	_, err = ReadMapImage(yamlFile)
	assert.ErrorIs(t, err, ErrMalformedInput)
}
