package resultcache

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// frameHeaderSize is the length prefix in bytes: the uncompressed size
// as a little-endian uint32.
const frameHeaderSize = 4

// maxEntrySize caps the uncompressed size accepted during decompression,
// so a corrupt header cannot trigger an arbitrary allocation.
const maxEntrySize = 16 << 20

// Frame corruption errors.
var (
	ErrFrameTruncated = errors.New("lz4 frame truncated")
	ErrFrameTooLarge  = errors.New("lz4 frame exceeds size limit")
)

// compressFrame compresses data into a length-prefixed LZ4 block.
func compressFrame(data []byte) ([]byte, error) {
	frame := make([]byte, frameHeaderSize+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(frame, uint32(len(data)))

	written, err := lz4.CompressBlock(data, frame[frameHeaderSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	// CompressBlock reports zero for incompressible input; store it raw
	// with a zero size prefix meaning "not compressed".
	if written == 0 {
		raw := make([]byte, frameHeaderSize+len(data))
		binary.LittleEndian.PutUint32(raw, 0)
		copy(raw[frameHeaderSize:], data)

		return raw, nil
	}

	return frame[:frameHeaderSize+written], nil
}

// decompressFrame restores data compressed by compressFrame.
func decompressFrame(frame []byte) ([]byte, error) {
	if len(frame) < frameHeaderSize {
		return nil, ErrFrameTruncated
	}

	size := binary.LittleEndian.Uint32(frame)
	if size == 0 {
		return frame[frameHeaderSize:], nil
	}

	if size > maxEntrySize {
		return nil, ErrFrameTooLarge
	}

	data := make([]byte, size)

	written, err := lz4.UncompressBlock(frame[frameHeaderSize:], data)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}

	return data[:written], nil
}
