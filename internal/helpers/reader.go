package helpers

import (
	"fmt"
	"io"
)

// ReadLimited reads at most limit bytes from r. A body larger than limit is
// an error rather than a silent truncation. limit <= 0 disables the cap.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return data, nil
}
