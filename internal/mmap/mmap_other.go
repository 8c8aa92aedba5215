//go:build !unix && !windows

package mmap

import (
	"io"
	"os"
)

// osMap reads the whole file on platforms without a mapping syscall.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}

	return data, func([]byte) error { return nil }, nil
}

func osAdviseSequential([]byte) {}
