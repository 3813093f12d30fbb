package mkfs

import (
	"fmt"

	"github.com/retrofs/fs7"
	"github.com/retrofs/fs7/disk"
)

// InodeWriter encodes fixed 12-word inode records into the inode table
// region of the surface. Record layout, in words:
//
//	0     flags
//	1..7  block pointers (direct, or indirect when the large flag is set)
//	8     owner id
//	9     link count (always 1; hard links are not supported)
//	10    size in words
//	11    unique id
type InodeWriter struct {
	img   *disk.Image
	alloc *Allocator
}

// NewInodeWriter returns an encoder writing into the given surface and
// drawing numbers from the given allocator.
func NewInodeWriter(img *disk.Image, alloc *Allocator) *InodeWriter {
	return &InodeWriter{img: img, alloc: alloc}
}

// Fill allocates an inode number (or claims `explicit` when it is
// non-negative) and writes the record. `flags` carries the type and
// permission bits; the used bit is always added and the large bit is
// derived from the size. Supplying more than 7 block pointers is a hard
// failure, never a truncation.
func (iw *InodeWriter) Fill(
	explicit int,
	flags fs7.Word,
	owner int,
	size uint,
	blocks []fs7.BlockNum,
) (fs7.Inum, error) {
	if len(blocks) > fs7.NumInodePointers {
		return 0, fs7.ErrPointerOverflow.WithMessage(fmt.Sprintf(
			"%d block pointers, inode slots hold %d", len(blocks), fs7.NumInodePointers))
	}

	var inum fs7.Inum
	var err error
	if explicit >= 0 {
		inum, err = iw.alloc.ClaimInode(fs7.Inum(explicit))
	} else {
		inum, err = iw.alloc.AllocInode()
	}
	if err != nil {
		return 0, err
	}

	flags |= fs7.FlagUsed
	if size > fs7.LargeFileBoundary {
		flags |= fs7.FlagLarge
	}

	record := make([]fs7.Word, 0, fs7.WordsPerInode)
	record = append(record, flags)
	for i := 0; i < fs7.NumInodePointers; i++ {
		if i < len(blocks) {
			record = append(record, fs7.Word(blocks[i]))
		} else {
			record = append(record, 0)
		}
	}
	record = append(record,
		fs7.OwnerWord(owner),
		1,
		fs7.Word(size),
		fs7.Word(inum))

	block, offset := fs7.InodeLocation(inum)
	for i, w := range record {
		if err := iw.img.SetWord(block, offset+uint(i), w); err != nil {
			return 0, err
		}
	}
	return inum, nil
}

// AppendPointer adds one more block number to an already-written inode,
// taking the first free pointer slot. This is the growth path used when
// a directory outgrows its current block. With all 7 slots occupied the
// growth limit is reached and the build fails.
func (iw *InodeWriter) AppendPointer(inum fs7.Inum, blockNum fs7.BlockNum) error {
	block, offset := fs7.InodeLocation(inum)
	for slot := uint(1); slot <= fs7.NumInodePointers; slot++ {
		if iw.img.Word(block, offset+slot) == 0 {
			return iw.img.SetWord(block, offset+slot, fs7.Word(blockNum))
		}
	}
	return fs7.ErrPointerOverflow.WithMessage(fmt.Sprintf(
		"inode %d has no free pointer slot", inum))
}
