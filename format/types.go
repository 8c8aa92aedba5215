package format

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/arloliu/spz/errs"
)

type (
	Version         int32
	CompressionType uint8
	ReadStrategy    uint8
)

const (
	Version1 Version = 1 // Version1 stores positions as float16 and rotations as first-three bytes.
	Version2 Version = 2 // Version2 stores positions as fixed24 and rotations as first-three bytes.
	Version3 Version = 3 // Version3 stores positions as fixed24 and rotations as smallest-three words.

	LatestVersion = Version3
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip is the standard spz container.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard frames.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2 streams.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 frames.
)

const (
	ReadAuto     ReadStrategy = iota // ReadAuto picks mmap or buffered by platform.
	ReadMmap                         // ReadMmap memory-maps the file read-only.
	ReadBuffered                     // ReadBuffered reads the whole file into memory.
)

func (v Version) String() string {
	switch v {
	case Version1, Version2, Version3:
		return fmt.Sprintf("v%d", int32(v))
	default:
		return "Unknown"
	}
}

// UsesFloat16 reports whether positions are stored as three float16 values.
func (v Version) UsesFloat16() bool {
	return v == Version1
}

// UsesQuaternionSmallestThree reports whether rotations use the 4-byte smallest-three encoding.
func (v Version) UsesQuaternionSmallestThree() bool {
	return v >= Version3
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a case-insensitive compression name.
func ParseCompressionType(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gzip", "gz":
		return CompressionGzip, nil
	case "none", "raw":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCompression, s)
	}
}

func (s ReadStrategy) String() string {
	switch s {
	case ReadAuto:
		return "Auto"
	case ReadMmap:
		return "Mmap"
	case ReadBuffered:
		return "Buffered"
	default:
		return "Unknown"
	}
}

// Resolve maps ReadAuto to the concrete strategy for the running platform.
//
// Mapping is skipped on darwin and windows, where a full read is faster or more
// reliable for a single sequential pass over a compressed file.
func (s ReadStrategy) Resolve() ReadStrategy {
	if s != ReadAuto {
		return s
	}

	switch runtime.GOOS {
	case "darwin", "ios", "windows", "js", "wasip1", "plan9":
		return ReadBuffered
	default:
		return ReadMmap
	}
}

// ParseReadStrategy parses a case-insensitive read strategy name.
func ParseReadStrategy(s string) (ReadStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ReadAuto, nil
	case "mmap":
		return ReadMmap, nil
	case "buffered", "read":
		return ReadBuffered, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidReadStrategy, s)
	}
}
