package pcf

import (
	"encoding/binary"
	"io"
)

// reader wraps the caller-supplied byte source. Every section names its
// absolute base offset, so no decode depends on where a previous read
// happened to leave the cursor.
type reader struct {
	src io.ReadSeeker
}

func (r *reader) section(base int64) section {
	return section{src: r.src, base: base}
}

var zeros [8]byte

// section is a cursor over bytes starting at a fixed file offset. The
// first failure sticks: later reads return zero values and Err reports
// the original cause. Short reads surface as io.ErrUnexpectedEOF.
type section struct {
	src  io.ReadSeeker
	base int64
	pos  int64
	err  error
	buf  [8]byte
}

func (s *section) Err() error {
	return s.err
}

func (s *section) read(n int) []byte {
	if s.err != nil {
		return zeros[:n]
	}

	if _, err := s.src.Seek(s.base+s.pos, io.SeekStart); err != nil {
		s.err = err
		return zeros[:n]
	}

	if _, err := io.ReadFull(s.src, s.buf[:n]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		s.err = err
		return zeros[:n]
	}

	s.pos += int64(n)
	return s.buf[:n]
}

// bytes fills dst from the current position. Used for bulk row reads
// that don't fit the fixed scratch buffer.
func (s *section) bytes(dst []byte) {
	if s.err != nil {
		return
	}

	if _, err := s.src.Seek(s.base+s.pos, io.SeekStart); err != nil {
		s.err = err
		return
	}

	if _, err := io.ReadFull(s.src, dst); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		s.err = err
		return
	}

	s.pos += int64(len(dst))
}

func (s *section) skip(n int64) {
	s.pos += n
}

func (s *section) u8() u8 {
	return s.read(1)[0]
}

func (s *section) u16() u16 {
	return binary.BigEndian.Uint16(s.read(2))
}

func (s *section) u32() u32 {
	return binary.BigEndian.Uint32(s.read(4))
}

func (s *section) i16() i16 {
	return i16(s.u16())
}

func (s *section) i32() i32 {
	return i32(s.u32())
}

// The file header and table of contents are little-endian; everything
// past them is big-endian.
func (s *section) u32le() u32 {
	return binary.LittleEndian.Uint32(s.read(4))
}
