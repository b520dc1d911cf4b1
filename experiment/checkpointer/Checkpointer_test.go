package checkpointer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNEpisode(t *testing.T) {
	dir := t.TempDir()
	weights := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	c := NewNEpisode(3, weights,
		FilenameEnumerator(0, filepath.Join(dir, "w"), ".bin"))

	for episode := 1; episode <= 6; episode++ {
		require.NoError(t, c.Checkpoint(episode))
	}
	assert.NoFileExists(t, filepath.Join(dir, "w3.bin"))

	data, err := os.ReadFile(filepath.Join(dir, "w2.bin"))
	require.NoError(t, err)
	var got mat.Dense
	require.NoError(t, got.UnmarshalBinary(data))
	assert.True(t, mat.Equal(weights, &got))

	assert.Panics(t, func() { NewNEpisode(0, weights, nil) })

	bad := NewNEpisode(1, weights, func() string { return dir })
	assert.Error(t, bad.Checkpoint(1))
}

func TestFilenameEnumerator(t *testing.T) {
	next := FilenameEnumerator(4, "file", ".bin")
	assert.Equal(t, "file5.bin", next())
	assert.Equal(t, "file6.bin", next())
}
