package sink

import (
	"fmt"
	"hash/crc32"
	"image"
	"io"
	"os"

	"github.com/corona10/goimagehash"
)

// CalculateCRC32 calculates the CRC32 checksum of a file
func CalculateCRC32(filename string) (uint32, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}

	return h.Sum32(), nil
}

// FormatCRC32 renders a checksum the way it is stored in manifests.
func FormatCRC32(sum uint32) string {
	return fmt.Sprintf("%08X", sum)
}

// PerceptualHash returns the pHash of a frame in goimagehash's string form.
func PerceptualHash(img image.Image) (string, error) {
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}
	return hash.ToString(), nil
}
