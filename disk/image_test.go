package disk_test

import (
	"testing"

	"github.com/retrofs/fs7"
	"github.com/retrofs/fs7/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage__UnsetWordsReadZero(t *testing.T) {
	img := disk.NewImage()
	assert.EqualValues(t, 0, img.Word(0, 0))
	assert.EqualValues(t, 0, img.Word(7999, 63))
	assert.EqualValues(t, 0, img.WrittenBlocks())
}

func TestImage__SetAndGet(t *testing.T) {
	img := disk.NewImage()
	require.NoError(t, img.SetWord(711, 5, 0123456))
	assert.EqualValues(t, 0123456, img.Word(711, 5))
	assert.True(t, img.BlockWritten(711))
	assert.False(t, img.BlockWritten(712))
	assert.EqualValues(t, 1, img.WrittenBlocks())
}

func TestImage__WordsMaskedTo18Bits(t *testing.T) {
	img := disk.NewImage()
	require.NoError(t, img.SetWord(711, 0, fs7.Word(0x7FFFFFFF)))
	assert.EqualValues(t, fs7.Word(fs7.WordMask), img.Word(711, 0))
}

func TestImage__Bounds(t *testing.T) {
	img := disk.NewImage()
	assert.ErrorIs(t, img.SetWord(8000, 0, 1), fs7.ErrInvalidArgument)
	assert.ErrorIs(t, img.SetWord(0, 64, 1), fs7.ErrInvalidArgument)

	tooMany := make([]fs7.Word, 65)
	assert.ErrorIs(t, img.SetWords(0, tooMany), fs7.ErrInvalidArgument)
}

func TestImage__SetWordsFillsBlock(t *testing.T) {
	img := disk.NewImage()
	words := make([]fs7.Word, fs7.WordsPerBlock)
	for i := range words {
		words[i] = fs7.Word(i + 1)
	}
	require.NoError(t, img.SetWords(1000, words))

	block := img.Block(1000)
	require.Len(t, block, fs7.WordsPerBlock)
	assert.EqualValues(t, 1, block[0])
	assert.EqualValues(t, 64, block[63])
}
