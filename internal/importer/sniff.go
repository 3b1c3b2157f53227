package importer

import (
	"bytes"
	"fmt"
	"image"

	// Register the decoders image.DecodeConfig can recognize. The
	// stdlib covers the common web formats; the x/image decoders add
	// what cameras and screenshots still produce.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// sniffImage reports whether data is a decodable image. Detection is by
// content, not file extension, so misnamed files sort themselves out.
func sniffImage(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}

// sizeLabel renders a byte count the way the UI displays it.
//
//	sizeLabel(532)     // "532 B"
//	sizeLabel(2411724) // "2.30 MB"
func sizeLabel(n int) string {
	switch {
	case n >= 1024*1024*1024:
		return fmt.Sprintf("%.2f GB", float64(n)/1024/1024/1024)
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/1024/1024)
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
