// Package compress provides the container codecs used around serialized spz payloads.
//
// A standard .spz file is a single gzip stream wrapping the packed payload (header plus
// attribute arrays). This package implements that codec and a handful of alternatives
// that trade file compatibility for speed or ratio:
//   - Gzip: the standard container, readable by every spz implementation
//   - Zstd: better ratio at similar speed
//   - S2: very fast, moderate ratio (stream format)
//   - LZ4: fastest decompression (frame format)
//   - None: the raw payload, starting with the "NGSP" magic
//
// Only Gzip produces files other spz readers understand. The other codecs are intended for
// caches, transport and object stores owned by the same application.
//
// # Architecture
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	    Type() format.CompressionType
//	}
//
// Codecs are created with CreateCodec (explicit level) or fetched with GetCodec
// (shared default-level instances).
//
// # Detection
//
// Every supported container begins with a distinct signature, so readers never need to be
// told what they are reading:
//
//	payload, ct, err := compress.DecompressAuto(fileBytes)
//
// For streaming, NewAutoReader wraps an io.Reader with the matching decompressor. The
// header-only reader uses this to inspect a file without inflating all of it.
//
// # Thread Safety
//
// All codecs are value types holding configuration only and are safe for concurrent use.
// Encoders and decoders are drawn from sync.Pools per call.
package compress
