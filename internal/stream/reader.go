package stream

import (
	"io"
	"os"
	"sync"
)

// WindowReader serves pull reads from a bounded window of a single file. It
// owns the file handle and keeps no cursor of its own: every read names its
// logical offset, so pulls may arrive in any order the transport likes.
type WindowReader struct {
	file   *os.File
	base   int64 // absolute file offset of window byte 0
	length int64 // window size in bytes

	closeOnce sync.Once
}

// NewWindowReader wraps an open file in a window of length bytes starting at
// absolute offset base. The reader takes ownership of the handle.
func NewWindowReader(file *os.File, base, length int64) *WindowReader {
	return &WindowReader{file: file, base: base, length: length}
}

// ReadWindow fills p with window bytes starting at logical offset pos and
// reports how many were produced. io.EOF marks end-of-stream: the window is
// exhausted, the file ended early, or a read failed mid-stream. Failures are
// not retried; the in-flight response simply truncates.
func (w *WindowReader) ReadWindow(pos int64, p []byte) (int, error) {
	if pos >= w.length {
		return 0, io.EOF
	}
	if remaining := w.length - pos; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, _ := w.file.ReadAt(p, w.base+pos)
	if n > 0 {
		// A short read is still progress; a real error resurfaces on the
		// next pull as a clean end-of-stream.
		return n, nil
	}
	return 0, io.EOF
}

// Close releases the underlying file handle. Safe to call more than once.
func (w *WindowReader) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.file.Close()
	})
	return err
}
