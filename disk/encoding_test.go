package disk_test

import (
	"testing"

	"github.com/retrofs/fs7"
	"github.com/retrofs/fs7/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackText__EvenLength(t *testing.T) {
	words := disk.PackText([]byte("hi"))
	require.Len(t, words, 1)
	assert.EqualValues(t, fs7.Word('h')<<9|fs7.Word('i'), words[0])
}

func TestPackText__TrailingCharacter(t *testing.T) {
	// A trailing unpaired character contributes only the high half.
	words := disk.PackText([]byte("abc"))
	require.Len(t, words, 2)
	assert.EqualValues(t, fs7.Word('a')<<9|fs7.Word('b'), words[0])
	assert.EqualValues(t, fs7.Word('c')<<9, words[1])
}

func TestPackText__Empty(t *testing.T) {
	assert.Empty(t, disk.PackText(nil))
}

func TestPackTape__FullTriplets(t *testing.T) {
	words := disk.PackTape([]byte{0277, 077, 001, 0200, 000, 042})
	require.Len(t, words, 2)
	// Only the low six bits of each frame survive.
	assert.EqualValues(t, fs7.Word(077)<<12|fs7.Word(077)<<6|1, words[0])
	assert.EqualValues(t, fs7.Word(042), words[1])
}

func TestPackTape__PartialTriplet(t *testing.T) {
	words := disk.PackTape([]byte{0201})
	require.Len(t, words, 1)
	assert.EqualValues(t, fs7.Word(1)<<12, words[0])
}

func TestIsTape(t *testing.T) {
	// Content is paper tape iff the first byte's top two bits are 10.
	assert.True(t, disk.IsTape([]byte{0200}))
	assert.True(t, disk.IsTape([]byte{0277, 'a', 'b'}))
	assert.False(t, disk.IsTape([]byte{0100}))
	assert.False(t, disk.IsTape([]byte("plain text")))
	assert.False(t, disk.IsTape([]byte{0300}))
	assert.False(t, disk.IsTape(nil))
}

func TestPackContents__Sniffing(t *testing.T) {
	text := disk.PackContents([]byte("ab"))
	require.Len(t, text, 1)
	assert.EqualValues(t, fs7.Word('a')<<9|fs7.Word('b'), text[0])

	tape := disk.PackContents([]byte{0252, 033, 077})
	require.Len(t, tape, 1)
	assert.EqualValues(t, fs7.Word(052)<<12|fs7.Word(033)<<6|077, tape[0])
}

// Encoding a word into its three tape frames and decoding it back must
// reproduce the original value exactly, for every 18-bit value.
func TestTapeFrames__RoundTripAllValues(t *testing.T) {
	for w := fs7.Word(0); w <= fs7.WordMask; w++ {
		b0, b1, b2 := disk.TapeFrames(w)
		if b0&0300 != 0200 {
			t.Fatalf("frame marker wrong for word %06o: first frame %03o", w, b0)
		}
		if got := disk.WordFromTape(b0, b1, b2); got != w {
			t.Fatalf("round trip failed: %06o became %06o", w, got)
		}
	}
}

func TestPackName__PaddingAndTruncation(t *testing.T) {
	short := disk.PackName("dd")
	assert.EqualValues(t, fs7.Word('d')<<9|fs7.Word('d'), short[0])
	assert.EqualValues(t, fs7.Word(' ')<<9|fs7.Word(' '), short[1])
	assert.EqualValues(t, fs7.Word(' ')<<9|fs7.Word(' '), short[3])
	assert.Equal(t, "dd", disk.UnpackName(short))

	long := disk.PackName("verylongname")
	assert.Equal(t, "verylong", disk.UnpackName(long))

	exact := disk.PackName("12345678")
	assert.Equal(t, "12345678", disk.UnpackName(exact))
}
