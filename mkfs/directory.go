package mkfs

import (
	"github.com/retrofs/fs7"
	"github.com/retrofs/fs7/disk"
)

// dirCursor is the transient write position inside one open directory.
type dirCursor struct {
	block  fs7.BlockNum
	offset uint
	inum   fs7.Inum
}

// DirBuilder maintains the stack of currently open directories and
// appends fixed 8-word entry records to whichever one is on top. When a
// directory's current block fills up, a fresh block is allocated and
// appended to the owning inode's pointer list transparently.
type DirBuilder struct {
	img    *disk.Image
	alloc  *Allocator
	inodes *InodeWriter
	stack  []dirCursor
}

// NewDirBuilder returns a directory builder with no open directory.
func NewDirBuilder(img *disk.Image, alloc *Allocator, inodes *InodeWriter) *DirBuilder {
	return &DirBuilder{img: img, alloc: alloc, inodes: inodes}
}

// Open creates a directory: one data block, an entry in the parent (the
// directory currently on top of the stack, if any), an inode whose sole
// pointer is that block, and a cursor pushed for subsequent entries.
// Every new directory is immediately seeded with a "dd" entry naming its
// own inode. Pass a negative `explicit` for sequential numbering.
func (db *DirBuilder) Open(name string, perm fs7.Word, owner int, explicit int) (fs7.Inum, error) {
	blocks, err := db.alloc.AllocBlocks(fs7.WordsPerBlock)
	if err != nil {
		return 0, err
	}

	inum, err := db.inodes.Fill(
		explicit, fs7.FlagDir|perm, owner, fs7.WordsPerBlock, blocks)
	if err != nil {
		return 0, err
	}
	if err := db.AddEntry(name, inum); err != nil {
		return 0, err
	}

	db.stack = append(db.stack, dirCursor{block: blocks[0], inum: inum})

	// Self reference, not a parent reference.
	if err := db.AddEntry("dd", inum); err != nil {
		return 0, err
	}
	return inum, nil
}

// Close pops the open-directory stack. Closing with nothing open is a
// caller contract violation; the outermost scope is implicit and never
// explicitly closed.
func (db *DirBuilder) Close() error {
	if len(db.stack) == 0 {
		return fs7.ErrNoOpenDirectory.WithMessage("unbalanced directory close")
	}
	db.stack = db.stack[:len(db.stack)-1]
	return nil
}

// Depth reports how many directories are currently open.
func (db *DirBuilder) Depth() int { return len(db.stack) }

// AddEntry appends a name/inode record to the active directory. With no
// directory open this is deliberately a no-op: it is how the topmost
// root record is dropped before any directory exists.
func (db *DirBuilder) AddEntry(name string, inum fs7.Inum) error {
	if len(db.stack) == 0 {
		return nil
	}
	cur := &db.stack[len(db.stack)-1]

	if cur.offset >= fs7.WordsPerBlock {
		if err := db.grow(cur); err != nil {
			return err
		}
	}

	if err := db.img.SetWord(cur.block, cur.offset, fs7.Word(inum)); err != nil {
		return err
	}
	for i, w := range disk.PackName(name) {
		if err := db.img.SetWord(cur.block, cur.offset+1+uint(i), w); err != nil {
			return err
		}
	}
	cur.offset += fs7.DirentWords
	return nil
}

// grow gives a full directory a fresh block: allocate one, append it to
// the owning inode's pointer list, and reset the cursor into it.
func (db *DirBuilder) grow(cur *dirCursor) error {
	blocks, err := db.alloc.AllocBlocks(fs7.WordsPerBlock)
	if err != nil {
		return err
	}
	if err := db.inodes.AppendPointer(cur.inum, blocks[0]); err != nil {
		return err
	}
	cur.block = blocks[0]
	cur.offset = 0
	return nil
}
