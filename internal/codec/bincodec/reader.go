package bincodec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ypbank/txcompare/internal/codec"
)

// offsetReader wraps the input stream and tracks how many bytes have been
// consumed so parse errors can be pinned to a byte offset.
type offsetReader struct {
	r      *bufio.Reader
	offset int64
}

func (r *offsetReader) readFull(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.offset += int64(n)
	return err
}

func (r *offsetReader) readByte() (byte, error) {
	var buf [1]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (r *offsetReader) readUint32() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func (r *offsetReader) readUint64() (uint64, error) {
	var buf [8]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// truncated maps a short read into a localized parse error; genuine IO
// failures pass through wrapped.
func (r *offsetReader) truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &codec.ParseError{
			Format: FormatName,
			Offset: r.offset,
			Msg:    "unexpected end of stream inside a record frame",
		}
	}
	return fmt.Errorf("bin: read: %w", err)
}
