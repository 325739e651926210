package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// Port is the fixed TCP port the server listens on.
	Port = 8000

	// DefaultMovieDir is served when MOVIE_DIR is unset. A leading "~" is
	// expanded against the user's home directory.
	DefaultMovieDir = "~/Movies"

	// ReadChunk caps how many bytes the transport pulls from a window
	// reader in a single call.
	ReadChunk = 64 * 1024

	// DefaultBitrate and DefaultFPS feed the throughput meter's frame rate
	// estimate when the client supplies no ?bitrate= / ?fps= params.
	DefaultBitrate uint64 = 8_000_000
	DefaultFPS     uint   = 60

	// SampleWindow is the minimum interval between throughput readout lines.
	SampleWindow = 450 * time.Millisecond
)

// MovieDir resolves the directory files are served from: the MOVIE_DIR
// environment variable when set, otherwise DefaultMovieDir.
func MovieDir() (string, error) {
	dir := os.Getenv("MOVIE_DIR")
	if dir == "" {
		dir = DefaultMovieDir
	}
	if strings.HasPrefix(dir, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, strings.TrimPrefix(dir, "~/"))
	}
	return dir, nil
}
