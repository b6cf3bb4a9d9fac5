// Package codec provides the built-in message codecs and registers them with
// internal/registry.
package codec

import (
	"errors"
	"fmt"

	"github.com/simonhull/pngme/internal/registry"
)

// Names of the built-in codecs.
const (
	Plain = "plain"
	Zlib  = "zlib"
)

// ErrTooLarge is returned when a decoded message exceeds the size limit.
var ErrTooLarge = errors.New("message too large")

func init() {
	registry.Register(Plain, plainCodec{})
	registry.Register(Zlib, zlibCodec{level: DefaultZlibLevel})
}

// plainCodec stores the message bytes unchanged.
type plainCodec struct{}

func (plainCodec) Encode(msg []byte) ([]byte, error) {
	return msg, nil
}

func (plainCodec) Decode(data []byte, limit int64) ([]byte, error) {
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrTooLarge, len(data), limit)
	}
	return data, nil
}
