package cache

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// DefaultCompressionLevel is the zstd level used for cached payloads.
const DefaultCompressionLevel = 3

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Codec encodes values as JSON, optionally zstd compressed.
// Decoding accepts both compressed and plain payloads.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec creates a Codec. A level of 0 disables compression.
func NewCodec(level int) (*Codec, error) {
	c := &Codec{}

	var err error
	if level > 0 {
		c.encoder, err = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
	}

	c.decoder, err = zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return c, nil
}

// Marshal encodes v.
func (c *Codec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding value: %w", err)
	}
	if c.encoder == nil {
		return data, nil
	}
	return c.encoder.EncodeAll(data, nil), nil
}

// Unmarshal decodes data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	if bytes.HasPrefix(data, zstdMagic) {
		decompressed, err := c.decoder.DecodeAll(data, nil)
		if err != nil {
			return fmt.Errorf("decompressing value: %w", err)
		}
		data = decompressed
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}
	return nil
}
