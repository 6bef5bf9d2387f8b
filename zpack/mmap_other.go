//go:build !unix

package zpack

import (
	"io"
	"os"
)

// mapFile reads the whole file on platforms without a unix mmap.
func mapFile(f *os.File) ([]byte, func() error, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}
