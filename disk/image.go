// Package disk holds the in-memory representation of one surface and the
// serialization knowledge shared by the image builder and the dump tool:
// the word packing codecs and the three on-disk byte layouts.
package disk

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/retrofs/fs7"
)

// Image is the in-memory block table for one surface: a pre-zeroed array
// of 8000 blocks of 64 words. A bitmap tracks which blocks have ever been
// written so the emitters can skip straight to zero output for the rest.
// An Image is exclusively owned by one build; nothing here is safe for
// concurrent use.
type Image struct {
	words   []fs7.Word
	written bitmap.Bitmap
}

// NewImage returns a zeroed single-surface block table.
func NewImage() *Image {
	return &Image{
		words:   make([]fs7.Word, fs7.TotalBlocks*fs7.WordsPerBlock),
		written: bitmap.NewSlice(fs7.TotalBlocks),
	}
}

func checkBounds(block fs7.BlockNum, offset uint) error {
	if block >= fs7.TotalBlocks {
		return fs7.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"block number %d not in range [0, %d)", block, fs7.TotalBlocks))
	}
	if offset >= fs7.WordsPerBlock {
		return fs7.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"word offset %d not in range [0, %d)", offset, fs7.WordsPerBlock))
	}
	return nil
}

// SetWord stores one word, masked to 18 bits, and marks the block written.
func (img *Image) SetWord(block fs7.BlockNum, offset uint, value fs7.Word) error {
	if err := checkBounds(block, offset); err != nil {
		return err
	}
	img.words[uint(block)*fs7.WordsPerBlock+offset] = value & fs7.WordMask
	img.written.Set(int(block), true)
	return nil
}

// SetWords copies a run of words into a block starting at offset 0. The
// run must fit in one block.
func (img *Image) SetWords(block fs7.BlockNum, values []fs7.Word) error {
	if len(values) > fs7.WordsPerBlock {
		return fs7.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"%d words don't fit in one %d-word block", len(values), fs7.WordsPerBlock))
	}
	for i, v := range values {
		if err := img.SetWord(block, uint(i), v); err != nil {
			return err
		}
	}
	return nil
}

// Word reads one word. Words never written read as zero.
func (img *Image) Word(block fs7.BlockNum, offset uint) fs7.Word {
	if checkBounds(block, offset) != nil {
		return 0
	}
	return img.words[uint(block)*fs7.WordsPerBlock+offset]
}

// Block returns a read-only view of one block's 64 words.
func (img *Image) Block(block fs7.BlockNum) []fs7.Word {
	start := uint(block) * fs7.WordsPerBlock
	return img.words[start : start+fs7.WordsPerBlock]
}

// BlockWritten reports whether anything was ever stored in the block.
func (img *Image) BlockWritten(block fs7.BlockNum) bool {
	return img.written.Get(int(block))
}

// WrittenBlocks counts the blocks that have been touched, which is handy
// for sanity checks after a build.
func (img *Image) WrittenBlocks() uint {
	var n uint
	for i := 0; i < fs7.TotalBlocks; i++ {
		if img.written.Get(i) {
			n++
		}
	}
	return n
}
