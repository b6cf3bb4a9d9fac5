package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DefaultZlibLevel is the compression level used by the registered zlib codec.
const DefaultZlibLevel = zlib.BestCompression

// zlibCodec stores the message as a zlib stream, the same framing PNG uses
// for zTXt and iTXt text.
type zlibCodec struct {
	level int
}

func (c zlibCodec) Encode(msg []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := zlib.NewWriterLevel(buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("create zlib writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return nil, fmt.Errorf("compress message: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish zlib stream: %w", err)
	}
	return buf.Bytes(), nil
}

func (c zlibCodec) Decode(data []byte, limit int64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer r.Close()

	var src io.Reader = r
	if limit > 0 {
		// One extra byte tells "exactly at the limit" from "over it".
		src = io.LimitReader(r, limit+1)
	}

	out, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decompress message: %w", err)
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes after decompression", ErrTooLarge, limit)
	}
	return out, nil
}
