package testing

import (
	"bytes"
	"io"
	"testing"

	"github.com/retrofs/fs7/disk"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// ImageStream emits the surface in the given format and returns an
// in-memory stream over the bytes. Writes to the stream do not affect
// the surface.
func ImageStream(t *testing.T, img *disk.Image, format disk.Format) io.ReadWriteSeeker {
	var buf bytes.Buffer
	require.NoError(t, img.Emit(&buf, format), "emitting the surface failed")
	return bytesextra.NewReadWriteSeeker(buf.Bytes())
}

// TwoSurfaceStream lays the surface out the way the dump tool expects an
// image: two simh surfaces back to back, with `img` as the second and
// the first all zeroes.
func TwoSurfaceStream(t *testing.T, img *disk.Image) io.ReadWriteSeeker {
	var buf bytes.Buffer
	require.NoError(t, img.Emit(&buf, disk.FormatSimh), "emitting the surface failed")
	require.Equal(t, disk.SurfaceBytes, buf.Len(), "emitted surface is the wrong size")

	raw := make([]byte, 2*disk.SurfaceBytes)
	copy(raw[disk.SurfaceBytes:], buf.Bytes())
	return bytesextra.NewReadWriteSeeker(raw)
}
