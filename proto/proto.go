// Package proto tokenizes a human-authored filesystem listing into the
// normalized directive records the construction engine consumes. The
// listing is line oriented:
//
//	name  perm  owner            open a directory (entries follow)
//	name  perm  owner  path      add a file with contents read from path
//	name  perm  owner  inum      add a special node with an explicit
//	                             inode number, in octal
//	$                            close the innermost open directory
//
// perm is the five-character permission string ('d'/'s'/'-' plus four
// presence flags), owner is decimal with -1 meaning the native root, and
// '#' starts a comment running to end of line.
package proto

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retrofs/fs7"
)

// Kind discriminates directive records.
type Kind int

const (
	// KindDirectory opens a nested directory scope.
	KindDirectory Kind = iota
	// KindDirectoryEnd closes the innermost scope.
	KindDirectoryEnd
	// KindFile adds a file whose contents come from an external path.
	KindFile
	// KindSpecial adds a special node pinned to an explicit inode number.
	KindSpecial
)

// Record is one normalized directive. Perm holds only the permission
// bits; the node type is carried by Kind. Inum is -1 unless the record
// pins an explicit inode number.
type Record struct {
	Kind  Kind
	Name  string
	Perm  fs7.Word
	Owner int
	Inum  int
	Path  string
}

// Parse reads a whole listing and returns the directive stream. Any
// malformed line is an error; the engine never sees a partial stream.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	depth := 0

	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "$" {
			if len(fields) != 1 {
				return nil, lineError(lineno, "'$' must stand alone")
			}
			if depth == 0 {
				return nil, lineError(lineno, "'$' with no open directory")
			}
			depth--
			records = append(records, Record{Kind: KindDirectoryEnd})
			continue
		}

		rec, err := parseEntry(fields)
		if err != nil {
			return nil, fs7.ErrBadDirective.WithMessage(
				fmt.Sprintf("line %d", lineno)).Wrap(err)
		}
		if rec.Kind == KindDirectory {
			depth++
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fs7.ErrUnreadableSource.Wrap(err)
	}
	if depth != 0 {
		return nil, fs7.ErrBadDirective.WithMessage(fmt.Sprintf(
			"%d directory scopes left open at end of listing", depth))
	}
	return records, nil
}

func lineError(lineno int, msg string) error {
	return fs7.ErrBadDirective.WithMessage(fmt.Sprintf("line %d: %s", lineno, msg))
}

func parseEntry(fields []string) (Record, error) {
	if len(fields) < 3 {
		return Record{}, fmt.Errorf(
			"want at least name, permissions and owner, got %d fields", len(fields))
	}

	kind, perm, err := fs7.ParsePerm(fields[1])
	if err != nil {
		return Record{}, err
	}

	owner, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("bad owner id %q", fields[2])
	}

	rec := Record{
		Name:  fields[0],
		Perm:  perm,
		Owner: owner,
		Inum:  -1,
	}

	switch kind {
	case fs7.KindDirectory:
		rec.Kind = KindDirectory
		if len(fields) > 3 {
			return rec, fmt.Errorf("directory entry takes no payload, got %q", fields[3])
		}
	case fs7.KindFile:
		rec.Kind = KindFile
		if len(fields) != 4 {
			return rec, fmt.Errorf("file entry needs a contents path")
		}
		rec.Path = fields[3]
	case fs7.KindSpecial:
		rec.Kind = KindSpecial
		if len(fields) != 4 {
			return rec, fmt.Errorf("special entry needs an inode number")
		}
		inum, err := strconv.ParseUint(fields[3], 8, 32)
		if err != nil {
			return rec, fmt.Errorf("bad inode number %q", fields[3])
		}
		rec.Inum = int(inum)
	}
	return rec, nil
}
