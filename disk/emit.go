package disk

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/noxer/bytewriter"
	"github.com/retrofs/fs7"
)

// Format selects one of the three on-disk byte layouts.
type Format string

const (
	// FormatList is the human-readable octal/ASCII listing.
	FormatList Format = "list"
	// FormatPtr is paper tape binary, three 6-bit frames per word.
	FormatPtr Format = "ptr"
	// FormatSimh is four bytes per word, most significant byte first.
	// Historical tooling described this as little-endian; the actual byte
	// order is what downstream consumers read, so it stays as-is.
	FormatSimh Format = "simh"
)

// SimhBytesPerWord is the width of one word in the simh layout.
const SimhBytesPerWord = 4

// SurfaceBytes is the size of one full surface in the simh layout.
const SurfaceBytes = fs7.TotalBlocks * fs7.WordsPerBlock * SimhBytesPerWord

// ParseFormat maps a format name to its Format, defaulting to simh for
// the empty string.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatList, FormatPtr, FormatSimh:
		return Format(name), nil
	case "":
		return FormatSimh, nil
	}
	return "", fs7.ErrInvalidArgument.WithMessage(
		fmt.Sprintf("unknown image format %q; expected list, ptr or simh", name))
}

// Emit serializes the entire surface, all 8000 blocks in order, in the
// given layout. Blocks never written during the build serialize as zero
// words.
func (img *Image) Emit(w io.Writer, format Format) error {
	switch format {
	case FormatList:
		return img.emitList(w)
	case FormatPtr:
		return img.emitPtr(w)
	case FormatSimh:
		return img.emitSimh(w)
	}
	return fs7.ErrInvalidArgument.WithMessage(string(format))
}

// zeroBlock backs the emitters' fast path for untouched blocks.
var zeroBlock [fs7.WordsPerBlock]fs7.Word

func (img *Image) blockOrZero(block fs7.BlockNum) []fs7.Word {
	if !img.BlockWritten(block) {
		return zeroBlock[:]
	}
	return img.Block(block)
}

// WriteBlockListing renders one block in the listing layout: eight lines
// of eight six-digit octal words, then the same words as eight lines of
// sixteen packed characters, then a blank separator line. The dump tool
// uses the same rendering for existing images.
func WriteBlockListing(w io.Writer, words []fs7.Word) error {
	for row := 0; row < fs7.WordsPerBlock/8; row++ {
		for col := 0; col < 8; col++ {
			sep := " "
			if col == 7 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%06o%s", words[row*8+col], sep); err != nil {
				return err
			}
		}
	}
	line := make([]byte, 0, 17)
	for row := 0; row < fs7.WordsPerBlock/8; row++ {
		line = line[:0]
		for col := 0; col < 8; col++ {
			hi, lo := wordChars(words[row*8+col])
			line = append(line, hi, lo)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (img *Image) emitList(w io.Writer) error {
	for block := fs7.BlockNum(0); block < fs7.TotalBlocks; block++ {
		if err := WriteBlockListing(w, img.blockOrZero(block)); err != nil {
			return err
		}
	}
	return nil
}

func (img *Image) emitPtr(w io.Writer) error {
	var buf [fs7.WordsPerBlock * 3]byte
	for block := fs7.BlockNum(0); block < fs7.TotalBlocks; block++ {
		writer := bytewriter.New(buf[:])
		for _, word := range img.blockOrZero(block) {
			b0, b1, b2 := TapeFrames(word)
			if _, err := writer.Write([]byte{b0, b1, b2}); err != nil {
				return err
			}
		}
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

func (img *Image) emitSimh(w io.Writer) error {
	var buf [fs7.WordsPerBlock * SimhBytesPerWord]byte
	for block := fs7.BlockNum(0); block < fs7.TotalBlocks; block++ {
		writer := bytewriter.New(buf[:])
		for _, word := range img.blockOrZero(block) {
			if err := binary.Write(writer, binary.BigEndian, uint32(word)); err != nil {
				return err
			}
		}
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}
