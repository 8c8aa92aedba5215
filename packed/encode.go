package packed

import (
	"io"

	"github.com/arloliu/spz/compress"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/internal/pool"
)

// Bytes serializes g into a new uncompressed payload.
//
// Returns errs.ErrInconsistentSizes if the arrays do not match the scalar fields.
func (g *Gaussians) Bytes() ([]byte, error) {
	return g.AppendTo(make([]byte, 0, g.PayloadSize()))
}

// AppendTo appends the uncompressed payload to dst.
func (g *Gaussians) AppendTo(dst []byte) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	h, err := g.Header()
	if err != nil {
		return nil, err
	}

	dst = h.AppendTo(dst)
	for _, arr := range g.arraysInWireOrder() {
		dst = append(dst, arr...)
	}

	return dst, nil
}

// WriteTo streams the uncompressed payload to w without building it in memory.
func (g *Gaussians) WriteTo(w io.Writer) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}

	h, err := g.Header()
	if err != nil {
		return 0, err
	}

	total, err := h.WriteTo(w)
	if err != nil {
		return total, err
	}

	for _, arr := range g.arraysInWireOrder() {
		n, err := w.Write(arr)
		total += int64(n)
		if err != nil {
			return total, errs.IO("write payload", err)
		}
	}

	return total, nil
}

// Encode serializes g and compresses it with gzip, producing a standard .spz file.
func (g *Gaussians) Encode() ([]byte, error) {
	return g.EncodeWith(compress.NewGzipCodec(compress.DefaultLevel))
}

// EncodeWith serializes g and compresses it with compressor.
//
// The uncompressed payload is assembled in a pooled buffer; only the compressed
// output is allocated for the caller.
func (g *Gaussians) EncodeWith(compressor compress.Compressor) ([]byte, error) {
	bb := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(bb)

	bb.Grow(g.PayloadSize())

	payload, err := g.AppendTo(bb.B)
	if err != nil {
		return nil, err
	}
	bb.B = payload

	return compressor.Compress(bb.Bytes())
}

func (g *Gaussians) arraysInWireOrder() [6][]byte {
	return [6][]byte{
		g.Positions,
		g.Alphas,
		g.Colors,
		g.Scales,
		g.Rotations,
		g.SphericalHarmonics,
	}
}
