// Package mmap maps files read-only into memory.
//
//	m, err := mmap.Open("scene.spz")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// Unix platforms use mmap(2) with a sequential-access hint. Windows uses
// CreateFileMapping/MapViewOfFile. Other platforms fall back to reading the file into
// memory, so callers never need a separate code path.
//
// The slice returned by Bytes is only valid until Close.
package mmap
