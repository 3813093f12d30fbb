package mkfs

import (
	"os"
	"path/filepath"

	"github.com/retrofs/fs7"
	"github.com/retrofs/fs7/disk"
	"github.com/retrofs/fs7/proto"
)

// Builder interprets a normalized directive stream and drives the
// directory builder, file ingester and inode encoder against one shared
// surface. One Builder performs exactly one build; errors leave it in an
// undefined state and the surface must be thrown away.
type Builder struct {
	img    *disk.Image
	alloc  *Allocator
	inodes *InodeWriter
	dirs   *DirBuilder
	files  *FileWriter

	// contentDir is prepended to relative file content paths, so a
	// listing can be built from anywhere.
	contentDir string
}

// NewBuilder returns a builder over a fresh surface. contentDir is the
// directory file content paths in the listing are resolved against; ""
// means the current directory.
func NewBuilder(contentDir string) *Builder {
	img := disk.NewImage()
	alloc := NewAllocator()
	inodes := NewInodeWriter(img, alloc)
	dirs := NewDirBuilder(img, alloc, inodes)
	return &Builder{
		img:        img,
		alloc:      alloc,
		inodes:     inodes,
		dirs:       dirs,
		files:      NewFileWriter(img, alloc, inodes, dirs),
		contentDir: contentDir,
	}
}

// Image exposes the surface being built, for emission once Run succeeds.
func (b *Builder) Image() *disk.Image { return b.img }

// Allocator exposes the build's allocator cursors for inspection.
func (b *Builder) Allocator() *Allocator { return b.alloc }

// Run interprets the whole directive stream in order. The first error
// aborts the build.
func (b *Builder) Run(records []proto.Record) error {
	for _, rec := range records {
		if err := b.Apply(rec); err != nil {
			return err
		}
	}
	return nil
}

// Apply interprets one directive record.
func (b *Builder) Apply(rec proto.Record) error {
	switch rec.Kind {
	case proto.KindDirectory:
		_, err := b.dirs.Open(rec.Name, rec.Perm, rec.Owner, rec.Inum)
		return err

	case proto.KindDirectoryEnd:
		return b.dirs.Close()

	case proto.KindFile:
		contents, err := b.readContents(rec.Path)
		if err != nil {
			return err
		}
		_, err = b.files.Add(rec.Name, rec.Perm, rec.Owner, contents)
		return err

	case proto.KindSpecial:
		inum, err := b.inodes.Fill(rec.Inum, fs7.FlagSpecial|rec.Perm, rec.Owner, 0, nil)
		if err != nil {
			return err
		}
		return b.dirs.AddEntry(rec.Name, inum)
	}
	return fs7.ErrBadDirective.WithMessage("unknown record kind")
}

func (b *Builder) readContents(path string) ([]byte, error) {
	if b.contentDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.contentDir, path)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fs7.ErrUnreadableSource.Wrap(err)
	}
	return contents, nil
}
