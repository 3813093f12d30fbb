package disk

import (
	"strings"

	"github.com/retrofs/fs7"
)

// Two encodings put external content into 18-bit words. Plain text packs
// two characters per word, first character in the high nine bits. Paper
// tape binary packs three frames per word, each frame contributing its
// low six bits; the first frame of a word always carries the 0200 marker
// bit, which is also how tape content is recognized.

// TapeMarker is the framing bit set on the first frame of every word on
// paper tape.
const TapeMarker = 0200

const sixbitMask = 077

// IsTape reports whether content should be ingested as paper tape binary,
// decided by the top two bits of the first byte being 10.
func IsTape(data []byte) bool {
	return len(data) > 0 && data[0]&0300 == 0200
}

// PackText packs ASCII text two characters per word. A trailing unpaired
// character occupies the high half of the last word alone.
func PackText(data []byte) []fs7.Word {
	words := make([]fs7.Word, 0, (len(data)+1)/2)
	for i := 0; i < len(data); i += 2 {
		w := fs7.Word(data[i]) << 9
		if i+1 < len(data) {
			w |= fs7.Word(data[i+1])
		}
		words = append(words, w)
	}
	return words
}

// PackTape packs paper tape binary three frames per word, keeping the low
// six bits of each frame. A trailing partial word is padded with zero
// frames.
func PackTape(data []byte) []fs7.Word {
	words := make([]fs7.Word, 0, (len(data)+2)/3)
	for i := 0; i < len(data); i += 3 {
		w := fs7.Word(data[i]&sixbitMask) << 12
		if i+1 < len(data) {
			w |= fs7.Word(data[i+1]&sixbitMask) << 6
		}
		if i+2 < len(data) {
			w |= fs7.Word(data[i+2] & sixbitMask)
		}
		words = append(words, w)
	}
	return words
}

// PackContents sniffs the encoding of external content and packs it.
func PackContents(data []byte) []fs7.Word {
	if IsTape(data) {
		return PackTape(data)
	}
	return PackText(data)
}

// TapeFrames splits a word into its three tape frames, marker bit set on
// the first.
func TapeFrames(w fs7.Word) (byte, byte, byte) {
	return TapeMarker | byte((w>>12)&sixbitMask),
		byte((w >> 6) & sixbitMask),
		byte(w & sixbitMask)
}

// WordFromTape reassembles a word from its three tape frames. It is the
// exact inverse of TapeFrames for every 18-bit value.
func WordFromTape(b0, b1, b2 byte) fs7.Word {
	return fs7.Word(b0&sixbitMask)<<12 |
		fs7.Word(b1&sixbitMask)<<6 |
		fs7.Word(b2&sixbitMask)
}

// PackName packs a directory entry name into its four name words, space
// padded and truncated to eight characters.
func PackName(name string) [fs7.NameWords]fs7.Word {
	if len(name) > fs7.MaxNameLen {
		name = name[:fs7.MaxNameLen]
	} else if len(name) < fs7.MaxNameLen {
		name += strings.Repeat(" ", fs7.MaxNameLen-len(name))
	}

	var words [fs7.NameWords]fs7.Word
	for i := range words {
		words[i] = fs7.Word(name[i*2])<<9 | fs7.Word(name[i*2+1])
	}
	return words
}

// UnpackName reverses PackName, dropping the trailing padding.
func UnpackName(words [fs7.NameWords]fs7.Word) string {
	raw := make([]byte, 0, fs7.MaxNameLen)
	for _, w := range words {
		raw = append(raw, byte((w>>9)&0177), byte(w&0177))
	}
	return strings.TrimRight(string(raw), " ")
}

// wordChars renders a word as its two packed characters for the listing
// output, substituting a space for anything unprintable.
func wordChars(w fs7.Word) (byte, byte) {
	return printable(uint(w >> 9)), printable(uint(w & 0777))
}

func printable(c uint) byte {
	if c >= 040 && c <= 0176 {
		return byte(c)
	}
	return ' '
}
