package disk_test

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/retrofs/fs7"
	"github.com/retrofs/fs7/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"list", "ptr", "simh"} {
		format, err := disk.ParseFormat(name)
		require.NoError(t, err)
		assert.EqualValues(t, name, format)
	}

	format, err := disk.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, disk.FormatSimh, format, "empty format must default to simh")

	_, err = disk.ParseFormat("intel-hex")
	assert.ErrorIs(t, err, fs7.ErrInvalidArgument)
}

func TestEmitSimh__SizeAndByteOrder(t *testing.T) {
	img := disk.NewImage()
	require.NoError(t, img.SetWord(0, 0, 0654321))

	var buf bytes.Buffer
	require.NoError(t, img.Emit(&buf, disk.FormatSimh))
	require.Equal(t, disk.SurfaceBytes, buf.Len(), "simh surface is the wrong size")

	// Most significant byte first: 0654321 == 0x35AD1.
	raw := buf.Bytes()
	assert.Equal(t, []byte{0x00, 0x03, 0x5A, 0xD1}, raw[:4])
	// Everything never written serializes as zero.
	assert.Equal(t, make([]byte, 8), raw[4:12])
}

func TestEmitPtr__FramingAndRoundTrip(t *testing.T) {
	img := disk.NewImage()
	require.NoError(t, img.SetWord(0, 0, 0712345))
	require.NoError(t, img.SetWord(0, 1, 0000001))

	var buf bytes.Buffer
	require.NoError(t, img.Emit(&buf, disk.FormatPtr))
	require.Equal(t, fs7.TotalBlocks*fs7.WordsPerBlock*3, buf.Len())

	raw := buf.Bytes()
	for word := 0; word < fs7.WordsPerBlock; word++ {
		first := raw[word*3]
		assert.EqualValues(t, 0200, first&0300, "first frame of word %d lacks the marker", word)
	}

	assert.EqualValues(t, 0712345, disk.WordFromTape(raw[0], raw[1], raw[2]))
	assert.EqualValues(t, 0000001, disk.WordFromTape(raw[3], raw[4], raw[5]))
	assert.EqualValues(t, 0, disk.WordFromTape(raw[6], raw[7], raw[8]))
}

func TestEmitList__BlockRendering(t *testing.T) {
	img := disk.NewImage()
	require.NoError(t, img.SetWord(0, 0, 0123456))
	require.NoError(t, img.SetWords(1, disk.PackText([]byte("hello!"))))

	var buf bytes.Buffer
	require.NoError(t, img.Emit(&buf, disk.FormatList))

	scanner := bufio.NewScanner(&buf)
	var lines []string
	// Block 0 plus block 1: 8 octal lines, 8 character lines and one
	// separator each.
	for i := 0; i < 34 && scanner.Scan(); i++ {
		lines = append(lines, scanner.Text())
	}
	require.GreaterOrEqual(t, len(lines), 34)

	assert.Equal(
		t,
		"123456 000000 000000 000000 000000 000000 000000 000000",
		lines[0])
	assert.Equal(t, strings.Repeat("000000", 8), strings.Join(strings.Fields(lines[1]), ""))
	// The character rendering of block 0. The high half of 0123456 is
	// 0123 ('S'); the low half 0456 is unprintable and renders as space.
	assert.Equal(t, "S"+strings.Repeat(" ", 15), lines[8])
	assert.Equal(t, "", lines[16], "blocks must be separated by a blank line")

	// Block 1 holds packed text; its first character line shows it.
	assert.Equal(
		t,
		fmt.Sprintf("%06o %06o %06o", 'h'<<9|'e', 'l'<<9|'l', 'o'<<9|'!'),
		lines[17][:20])
	assert.Equal(t, "hello!", strings.TrimRight(lines[25], " "))
}
