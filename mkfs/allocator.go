// Package mkfs is the image construction engine: a single-pass, stateful
// builder that turns a normalized directive stream into a populated
// surface. Allocation is strictly monotonic; nothing is ever freed or
// reused, and any constraint violation aborts the whole build.
package mkfs

import (
	"fmt"

	"github.com/retrofs/fs7"
)

// Allocator owns the block-number and inode-number cursors. Both only
// ever move forward, which is what guarantees that multi-block
// allocations are contiguous.
type Allocator struct {
	nextBlock fs7.BlockNum
	nextInode fs7.Inum
}

// NewAllocator returns an allocator with the block cursor at the first
// data block and the inode cursor at zero.
func NewAllocator() *Allocator {
	return &Allocator{nextBlock: fs7.FirstDataBlock}
}

// AllocBlocks grants enough contiguous data blocks to hold the given
// number of words and advances the cursor past them. Exceeding the
// surface capacity is an error.
func (a *Allocator) AllocBlocks(words uint) ([]fs7.BlockNum, error) {
	count := fs7.BlocksForWords(words)
	if uint(a.nextBlock)+count > fs7.TotalBlocks {
		return nil, fs7.ErrNoSpace.WithMessage(fmt.Sprintf(
			"need %d blocks at %d but the surface ends at %d",
			count, a.nextBlock, fs7.TotalBlocks))
	}

	blocks := make([]fs7.BlockNum, count)
	for i := range blocks {
		blocks[i] = a.nextBlock
		a.nextBlock++
	}
	return blocks, nil
}

// AllocInode grants the next free inode number.
func (a *Allocator) AllocInode() (fs7.Inum, error) {
	if uint(a.nextInode) >= fs7.TotalInodes {
		return 0, fs7.ErrInodeTableFull.WithMessage(fmt.Sprintf(
			"all %d inodes allocated", fs7.TotalInodes))
	}
	inum := a.nextInode
	a.nextInode++
	return inum, nil
}

// ClaimInode pins an explicitly requested inode number and moves the
// cursor past it. This is how callers reserve well-known numbers ahead
// of sequential allocation. A number below the cursor would overlap an
// earlier grant and is rejected.
func (a *Allocator) ClaimInode(inum fs7.Inum) (fs7.Inum, error) {
	if uint(inum) >= fs7.TotalInodes {
		return 0, fs7.ErrInodeTableFull.WithMessage(fmt.Sprintf(
			"inode %d not in range [0, %d)", inum, fs7.TotalInodes))
	}
	if inum < a.nextInode {
		return 0, fs7.ErrInodeConflict.WithMessage(fmt.Sprintf(
			"requested inode %d but allocation has reached %d", inum, a.nextInode))
	}
	a.nextInode = inum + 1
	return inum, nil
}

// NextBlock exposes the block cursor for inspection.
func (a *Allocator) NextBlock() fs7.BlockNum { return a.nextBlock }

// NextInode exposes the inode cursor for inspection.
func (a *Allocator) NextInode() fs7.Inum { return a.nextInode }
