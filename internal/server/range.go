package server

import (
	"fmt"
	"strconv"
	"strings"
)

// byteRange is an end-inclusive window into a file.
type byteRange struct {
	Start int64
	End   int64
}

const bytesPrefix = "bytes="

// parseRange interprets a single-range Range header against a file of the
// given size. It returns (nil, nil) when the header should be ignored and
// the full file served: missing, not a bytes= range, no dash, or a
// multi-range request. It returns an error when the request must be
// refused: garbled numerals inside a bytes= form, start past end, or start
// past the end of the file. End is clamped to the last byte of the file.
func parseRange(header string, size int64) (*byteRange, error) {
	if !strings.HasPrefix(header, bytesPrefix) {
		return nil, nil
	}
	spec := strings.TrimPrefix(header, bytesPrefix)
	if strings.Contains(spec, ",") {
		// Multi-range requests are out of scope; serve the whole file.
		return nil, nil
	}
	dash := strings.IndexByte(spec, '-')
	if dash < 0 {
		return nil, nil
	}

	startPart, endPart := spec[:dash], spec[dash+1:]
	var start, end int64

	if startPart == "" {
		// Suffix form "-N": the last N bytes of the file.
		suffix, err := strconv.ParseInt(endPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed range %q", header)
		}
		if suffix >= size {
			start = 0
		} else {
			start = size - suffix
		}
		end = size - 1
	} else {
		var err error
		start, err = strconv.ParseInt(startPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed range %q", header)
		}
		if endPart == "" {
			// Open-ended "N-" runs to the last byte.
			end = size - 1
		} else {
			end, err = strconv.ParseInt(endPart, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed range %q", header)
			}
			if end > size-1 {
				end = size - 1
			}
		}
	}

	if start > end || start >= size {
		return nil, fmt.Errorf("range %q out of bounds for size %d", header, size)
	}
	return &byteRange{Start: start, End: end}, nil
}
