package postgres

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// CompressionAlgo specifies the compression algorithm used for a stored
// change payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the payload size above which change JSON
// is compressed before storage.
const DefaultCompressThreshold = 4 * 1024

// ChangeCodec compresses and decompresses activity change payloads.
// Small payloads are stored as-is; large diffs (full entity snapshots on
// update) are zstd-compressed.
type ChangeCodec struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	threshold int
}

// NewChangeCodec creates a codec with the default threshold.
func NewChangeCodec() (*ChangeCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &ChangeCodec{
		encoder:   encoder,
		decoder:   decoder,
		threshold: DefaultCompressThreshold,
	}, nil
}

// Encode returns the payload to store and the algorithm marker.
func (c *ChangeCodec) Encode(raw []byte) ([]byte, CompressionAlgo) {
	if len(raw) <= c.threshold {
		return raw, CompressionNone
	}
	return c.encoder.EncodeAll(raw, nil), CompressionZstd
}

// Decode restores the original payload from storage.
func (c *ChangeCodec) Decode(stored []byte, algo CompressionAlgo) ([]byte, error) {
	switch algo {
	case CompressionZstd:
		out, err := c.decoder.DecodeAll(stored, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress changes: %w", err)
		}
		return out, nil
	default:
		return stored, nil
	}
}
