package fs7

import "strconv"

// Inode flag word bits. The two high bits track allocation state and the
// addressing scheme; the low bits describe the node type and permissions.
const (
	FlagUsed    Word = 0400000
	FlagLarge   Word = 0200000
	FlagSpecial Word = 0000040
	FlagDir     Word = 0000020
	FlagRead    Word = 0000010 // owner read
	FlagWrite   Word = 0000004 // owner write
	FlagOtherR  Word = 0000002 // world read
	FlagOtherW  Word = 0000001 // world write
)

// FlagType masks the node type bits. Plain files have neither bit set.
const FlagType = FlagSpecial | FlagDir

// NodeKind identifies what a directive record describes.
type NodeKind int

const (
	KindFile NodeKind = iota
	KindDirectory
	KindSpecial
)

func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSpecial:
		return "special"
	}
	return "invalid"
}

// permBits maps a permission string position to the flag bit it controls.
var permBits = [4]Word{FlagRead, FlagWrite, FlagOtherR, FlagOtherW}

// permChars is the letter expected at each position when the bit is set.
var permChars = [4]byte{'r', 'w', 'r', 'w'}

// ParsePerm parses a five-character permission string. The first character
// selects the node type ('d' directory, 's' special, '-' plain file); the
// remaining four are presence flags for owner-read, owner-write,
// world-read and world-write, each either its letter or '-'.
func ParsePerm(perm string) (NodeKind, Word, error) {
	if len(perm) != 5 {
		return 0, 0, ErrBadPermString.WithMessage(
			"must be exactly 5 characters, got " + strconv.Quote(perm))
	}

	var kind NodeKind
	switch perm[0] {
	case 'd':
		kind = KindDirectory
	case 's':
		kind = KindSpecial
	case '-':
		kind = KindFile
	default:
		return 0, 0, ErrBadPermString.WithMessage(
			"type character must be 'd', 's' or '-', got " + strconv.Quote(perm))
	}

	var bits Word
	for i, want := range permChars {
		switch perm[i+1] {
		case want:
			bits |= permBits[i]
		case '-':
		default:
			return 0, 0, ErrBadPermString.WithMessage(strconv.Quote(perm))
		}
	}
	return kind, bits, nil
}
