//go:build windows

package mmap

import (
	"os"
	"syscall"
	"unsafe"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	h, err := syscall.CreateFileMapping(syscall.Handle(f.Fd()), nil, syscall.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, nil, err
	}
	defer syscall.CloseHandle(h) //nolint:errcheck

	addr, err := syscall.MapViewOfFile(h, syscall.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, nil, err
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), munmap, nil
}

func munmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	return syscall.UnmapViewOfFile(uintptr(unsafe.Pointer(&data[0])))
}

func osAdviseSequential([]byte) {}
