package models

// FileRequest captures everything the handler resolved about one GET before
// streaming starts: the file on disk, the byte window to serve, and the
// estimation parameters for the throughput readout. Immutable once built.
type FileRequest struct {
	Path        string // resolved path on disk
	Size        int64  // total file size in bytes
	Start       int64  // first byte to serve
	End         int64  // last byte to serve, inclusive
	Partial     bool   // true when a valid Range header narrowed the window
	Bitrate     uint64 // estimated media bitrate in bits/sec
	FPS         uint   // target frames/sec used for the fps estimate
	ContentType string // detected MIME type
}

// ContentLength is the number of body bytes the response will carry.
// Zero for an empty file served whole (Start=0, End=-1).
func (f FileRequest) ContentLength() int64 {
	return f.End - f.Start + 1
}
