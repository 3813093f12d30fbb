// Package fs7 contains the shared definitions for building and inspecting
// disk images for an 18-bit word-addressed filesystem: the fixed surface
// geometry, the typed block and inode numbers, and the inode flag words.
//
// A surface is 8000 blocks of 64 words each. Block 0 is reserved, blocks
// 1 through 710 hold the densely packed inode table (five 12-word inodes
// per block), and everything from block 711 up is free data space.
package fs7

// WordMask is the largest value an 18-bit word can hold.
const WordMask = 0777777

const (
	// WordsPerBlock is the number of 18-bit words in one block.
	WordsPerBlock = 64

	// TotalBlocks is the number of blocks on one surface.
	TotalBlocks = 8000

	// FirstInodeBlock and LastInodeBlock bound the inode table region,
	// inclusive on both ends. Block 0 is reserved and never allocated.
	FirstInodeBlock = 1
	LastInodeBlock  = 710

	// FirstDataBlock is where data block allocation starts.
	FirstDataBlock = LastInodeBlock + 1

	// WordsPerInode is the size of one inode record.
	WordsPerInode = 12

	// InodesPerBlock is how many inode records fit in one block. The last
	// four words of each inode table block are dead space.
	InodesPerBlock = WordsPerBlock / WordsPerInode

	// TotalInodes is the capacity of the inode table.
	TotalInodes = (LastInodeBlock - FirstInodeBlock + 1) * InodesPerBlock

	// NumInodePointers is the number of block pointer slots in an inode.
	// This is a hard limit; exceeding it is always an error, never a
	// silent truncation.
	NumInodePointers = 7

	// LargeFileBoundary is the largest size, in words, that direct block
	// pointers can address. Anything bigger gets the large flag and one
	// level of indirect blocks.
	LargeFileBoundary = NumInodePointers * WordsPerBlock

	// MaxFileWords is the largest file one level of indirection can
	// address: 7 indirect blocks of 64 data block numbers each.
	MaxFileWords = NumInodePointers * WordsPerBlock * WordsPerBlock

	// DirentWords is the size of one directory entry record: one word of
	// inode number, four words of packed name, three unused words that
	// exist only to keep the slot spacing fixed.
	DirentWords = 8

	// NameWords is how many words of a dirent hold the packed name.
	NameWords = 4

	// MaxNameLen is the longest directory entry name. Longer names are
	// truncated, shorter ones space-padded.
	MaxNameLen = 8

	// DirentsPerBlock is how many entries fit in one directory block.
	DirentsPerBlock = WordsPerBlock / DirentWords
)

// Word is one 18-bit machine word. Only the low 18 bits are ever
// significant; everything that stores a Word masks it first.
type Word uint32

// BlockNum is the index of a block on the surface, in [0, TotalBlocks).
type BlockNum uint

// Inum is an inode number, in [0, TotalInodes).
type Inum uint

// RootOwner is the sentinel owner id for the native superuser. The owner
// field of an inode has no negative representation, so it is stored as
// the maximum representable word value.
const RootOwner = -1

// OwnerWord encodes an owner id into its on-disk word. Negative owner ids
// all mean the native root sentinel.
func OwnerWord(owner int) Word {
	if owner < 0 {
		return WordMask
	}
	return Word(owner) & WordMask
}

// InodeLocation gives the fixed position of an inode record on the
// surface. The inode table is densely packed starting at block 1.
func InodeLocation(inum Inum) (BlockNum, uint) {
	block := FirstInodeBlock + BlockNum(uint(inum)/InodesPerBlock)
	offset := WordsPerInode * (uint(inum) % InodesPerBlock)
	return block, offset
}

// BlocksForWords gives the number of blocks needed to hold the given
// number of words.
func BlocksForWords(words uint) uint {
	return (words + WordsPerBlock - 1) / WordsPerBlock
}
