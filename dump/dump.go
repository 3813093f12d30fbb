// Package dump linearizes an existing disk image into human-readable
// form. It is strictly read-only: it shares the word decoding knowledge
// with the builder but performs no allocation.
//
// Images are expected in the simh layout with two surfaces back to back;
// the first surface is skipped and only the second is printed. The
// builder, by contrast, only ever populates a single surface. That
// asymmetry is historical and deliberate.
package dump

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/retrofs/fs7"
	"github.com/retrofs/fs7/disk"
)

const surfaceWords = fs7.TotalBlocks * fs7.WordsPerBlock

// readSurface seeks past the first surface and decodes the second into
// words.
func readSurface(r io.ReadSeeker) ([]fs7.Word, error) {
	if _, err := r.Seek(disk.SurfaceBytes, io.SeekStart); err != nil {
		return nil, fs7.ErrInvalidImage.Wrap(err)
	}

	raw := make([]byte, surfaceWords*disk.SimhBytesPerWord)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fs7.ErrInvalidImage.WithMessage(
			"image is smaller than two surfaces").Wrap(err)
	}

	words := make([]fs7.Word, surfaceWords)
	for i := range words {
		v := binary.BigEndian.Uint32(raw[i*disk.SimhBytesPerWord:])
		words[i] = fs7.Word(v) & fs7.WordMask
	}
	return words, nil
}

// Listing prints every block of the image's second surface in the same
// octal/ASCII rendering the list emitter produces.
func Listing(r io.ReadSeeker, w io.Writer) error {
	words, err := readSurface(r)
	if err != nil {
		return err
	}
	for block := 0; block < fs7.TotalBlocks; block++ {
		start := block * fs7.WordsPerBlock
		err := disk.WriteBlockListing(w, words[start:start+fs7.WordsPerBlock])
		if err != nil {
			return err
		}
	}
	return nil
}

// InodeRow is one allocated inode in the CSV inventory. Numeric word
// fields are rendered in octal, matching the listing output.
type InodeRow struct {
	Inum     uint   `csv:"inum"`
	Flags    string `csv:"flags"`
	Owner    string `csv:"owner"`
	Links    uint   `csv:"links"`
	Size     uint   `csv:"size"`
	Pointers string `csv:"pointers"`
}

// Inventory walks the inode table of the image's second surface and
// writes one CSV row per allocated inode.
func Inventory(r io.ReadSeeker, w io.Writer) error {
	words, err := readSurface(r)
	if err != nil {
		return err
	}

	var rows []InodeRow
	for inum := fs7.Inum(0); uint(inum) < fs7.TotalInodes; inum++ {
		block, offset := fs7.InodeLocation(inum)
		record := words[uint(block)*fs7.WordsPerBlock+offset:]

		flags := record[0]
		if flags&fs7.FlagUsed == 0 {
			continue
		}

		pointers := ""
		for slot := 1; slot <= fs7.NumInodePointers; slot++ {
			if record[slot] == 0 {
				break
			}
			if pointers != "" {
				pointers += " "
			}
			pointers += fmt.Sprintf("%o", record[slot])
		}

		rows = append(rows, InodeRow{
			Inum:     uint(inum),
			Flags:    fmt.Sprintf("%06o", flags),
			Owner:    fmt.Sprintf("%o", record[8]),
			Links:    uint(record[9]),
			Size:     uint(record[10]),
			Pointers: pointers,
		})
	}
	return gocsv.Marshal(rows, w)
}
