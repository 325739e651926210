package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/moviesrv/moviesrv/internal/config"
	"github.com/moviesrv/moviesrv/internal/models"
	"github.com/moviesrv/moviesrv/internal/stream"
	log "github.com/sirupsen/logrus"
)

// ServeHTTP validates one request, resolves it against the media directory
// and streams the selected file window back to the client.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Debugf("Rejected %s %s: method not allowed", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Conservative traversal guard: refuse anything mentioning "..",
	// even filenames that legitimately contain it.
	if strings.Contains(r.URL.Path, "..") {
		log.Warnf("Rejected %s: path traversal attempt", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		return
	}

	path := s.root + r.URL.Path
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		log.Debugf("Rejected %s: not a servable file", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	size := info.Size()

	// The full file unless a valid Range narrows the window.
	start, end := int64(0), size-1
	partial := false
	rng, err := parseRange(r.Header.Get("Range"), size)
	if err != nil {
		log.Debugf("Rejected %s: %v", r.URL.Path, err)
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return
	}
	if rng != nil {
		start, end = rng.Start, rng.End
		partial = true
	}

	req := models.FileRequest{
		Path:        path,
		Size:        size,
		Start:       start,
		End:         end,
		Partial:     partial,
		Bitrate:     queryUint64(r, "bitrate", config.DefaultBitrate),
		FPS:         queryUint(r, "fps", config.DefaultFPS),
		ContentType: detectMIME(r.URL.Path),
	}

	file, err := os.Open(path)
	if err != nil {
		log.Errorf("Failed to open %s: %v", path, err)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	reader := stream.NewWindowReader(file, req.Start, req.ContentLength())
	meter := stream.NewMeter(req.Bitrate, req.FPS, s.console)
	log.Debugf("Streaming %s bytes %d-%d of %d", req.Path, req.Start, req.End, req.Size)

	h := w.Header()
	h.Set("Content-Type", req.ContentType)
	h.Set("Content-Length", strconv.FormatInt(req.ContentLength(), 10))
	h.Set("Accept-Ranges", "bytes")
	h.Set("Access-Control-Allow-Origin", "*")
	if req.Partial {
		h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", req.Start, req.End, req.Size))
		w.WriteHeader(http.StatusPartialContent)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	s.streamBody(w, r, reader, meter)
}

// streamBody drives the pull loop: read up to ReadChunk bytes at the next
// logical offset, hand them to the transport, account for them, repeat
// until end-of-stream or client disconnect. The reader and meter are
// released exactly once on every exit path.
func (s *Server) streamBody(w http.ResponseWriter, r *http.Request, reader *stream.WindowReader, meter *stream.Meter) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Warnf("Failed to close %s: %v", r.URL.Path, err)
		}
		meter.Finish()
		log.Debugf("Finished %s, delivered %d bytes", r.URL.Path, meter.TotalSent())
	}()

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, config.ReadChunk)
	ctx := r.Context()
	var pos int64

	for {
		select {
		case <-ctx.Done():
			// Client went away; deliver nothing further.
			return
		default:
		}

		n, err := reader.ReadWindow(pos, buf)
		if n > 0 {
			sent, werr := w.Write(buf[:n])
			if sent > 0 {
				meter.Record(sent)
				pos += int64(sent)
			}
			if werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			// End of the window, EOF, or a failed read.
			return
		}
	}
}

// queryUint64 reads an unsigned base-10 query parameter, falling back to
// def when the value is absent or malformed.
func queryUint64(r *http.Request, name string, def uint64) uint64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func queryUint(r *http.Request, name string, def uint) uint {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return def
	}
	return uint(v)
}
