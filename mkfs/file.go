package mkfs

import (
	"fmt"

	"github.com/retrofs/fs7"
	"github.com/retrofs/fs7/disk"
)

// FileWriter ingests external content into data blocks and encodes the
// inode that addresses them, directly for small files and through one
// level of indirect blocks for large ones.
type FileWriter struct {
	img    *disk.Image
	alloc  *Allocator
	inodes *InodeWriter
	dirs   *DirBuilder
}

// NewFileWriter returns a file ingester sharing the build's surface,
// allocator, inode encoder and directory stack.
func NewFileWriter(
	img *disk.Image, alloc *Allocator, inodes *InodeWriter, dirs *DirBuilder,
) *FileWriter {
	return &FileWriter{img: img, alloc: alloc, inodes: inodes, dirs: dirs}
}

// Add converts raw content into words (sniffing text versus paper tape
// from the first byte), lays the words out in freshly allocated blocks,
// encodes the file's inode, and records an entry for it in the active
// directory. It returns the inode number used.
func (fw *FileWriter) Add(name string, perm fs7.Word, owner int, contents []byte) (fs7.Inum, error) {
	words := disk.PackContents(contents)
	size := uint(len(words))

	dataBlocks, err := fw.alloc.AllocBlocks(size)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(words); i += fs7.WordsPerBlock {
		end := i + fs7.WordsPerBlock
		if end > len(words) {
			end = len(words)
		}
		if err := fw.img.SetWords(dataBlocks[i/fs7.WordsPerBlock], words[i:end]); err != nil {
			return 0, err
		}
	}

	pointers := dataBlocks
	if len(dataBlocks) > fs7.NumInodePointers {
		pointers, err = fw.writeIndirect(dataBlocks)
		if err != nil {
			return 0, err
		}
	}

	inum, err := fw.inodes.Fill(-1, perm, owner, size, pointers)
	if err != nil {
		return 0, err
	}
	if err := fw.dirs.AddEntry(name, inum); err != nil {
		return 0, err
	}
	return inum, nil
}

// writeIndirect builds the indirect block chain for a large file: blocks
// whose words are the data block numbers. The inode then points at the
// indirect blocks. Only one level exists; content needing more than 7
// indirect blocks is beyond what this format can address.
func (fw *FileWriter) writeIndirect(dataBlocks []fs7.BlockNum) ([]fs7.BlockNum, error) {
	needed := fs7.BlocksForWords(uint(len(dataBlocks)))
	if needed > fs7.NumInodePointers {
		return nil, fs7.ErrPointerOverflow.WithMessage(fmt.Sprintf(
			"%d data blocks need %d indirect blocks; one level of indirection tops out at %d (%d words)",
			len(dataBlocks), needed, fs7.NumInodePointers, fs7.MaxFileWords))
	}

	// One word per data block number, so the block math is the same as
	// for file content.
	indirect, err := fw.alloc.AllocBlocks(uint(len(dataBlocks)))
	if err != nil {
		return nil, err
	}

	numbers := make([]fs7.Word, len(dataBlocks))
	for i, b := range dataBlocks {
		numbers[i] = fs7.Word(b)
	}
	for i := 0; i < len(numbers); i += fs7.WordsPerBlock {
		end := i + fs7.WordsPerBlock
		if end > len(numbers) {
			end = len(numbers)
		}
		if err := fw.img.SetWords(indirect[i/fs7.WordsPerBlock], numbers[i:end]); err != nil {
			return nil, err
		}
	}
	return indirect, nil
}
