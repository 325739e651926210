package stream

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moviesrv/moviesrv/internal/config"
)

const mib = 1024.0 * 1024.0

// Meter aggregates throughput for one response and writes the operator
// readout. Counters are atomic so recording is safe under whatever
// interleaving drives the body; emission state is touched only by Record
// and Finish, which the transport invokes sequentially.
type Meter struct {
	totalSent atomic.Int64
	sinceLast atomic.Int64
	lastEmit  time.Time

	bitrate uint64 // estimated media bitrate, bits/sec
	fps     uint   // target frames/sec for the estimate

	out        io.Writer
	finishOnce sync.Once
}

// NewMeter builds a meter that writes readout lines to out, normally
// os.Stdout.
func NewMeter(bitrate uint64, fps uint, out io.Writer) *Meter {
	return &Meter{
		bitrate:  bitrate,
		fps:      fps,
		out:      out,
		lastEmit: time.Now(),
	}
}

// Record counts n freshly delivered bytes and, once the sample window has
// elapsed, emits one readout line. The line is \r-prefixed and left
// unterminated so consecutive samples overwrite each other on the terminal.
func (m *Meter) Record(n int) {
	m.totalSent.Add(int64(n))
	m.sinceLast.Add(int64(n))

	elapsed := time.Since(m.lastEmit)
	if elapsed < config.SampleWindow {
		return
	}
	sample := m.sinceLast.Swap(0)
	secs := elapsed.Seconds()
	mbps := float64(sample) / mib / secs

	// Estimated frames per second from bytes-per-frame at the declared
	// bitrate. A zero fps makes the denominator +Inf and the estimate 0,
	// a zero bitrate skips the estimate entirely.
	fpsEst := 0.0
	bytesPerFrame := float64(m.bitrate) / float64(m.fps) / 8.0
	if bytesPerFrame > 0 {
		fpsEst = float64(sample) / secs / bytesPerFrame
	}

	fmt.Fprintf(m.out, "\r📤 %.2f MB/s  |  ~%.1f fps (est)  sent total: %.2f MB ",
		mbps, fpsEst, float64(m.totalSent.Load())/mib)
	m.lastEmit = time.Now()
}

// TotalSent reports the bytes recorded so far.
func (m *Meter) TotalSent() int64 {
	return m.totalSent.Load()
}

// Finish prints the newline-terminated completion line. It runs at most
// once, when the response body is released.
func (m *Meter) Finish() {
	m.finishOnce.Do(func() {
		fmt.Fprintf(m.out, "\n✅ Done. Total sent: %.2f MB\n",
			float64(m.totalSent.Load())/mib)
	})
}
