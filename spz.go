// Package spz reads and writes 3D Gaussian splats in the compressed .spz format.
//
// An .spz file is a gzip stream holding a 16-byte header followed by quantized
// per-point attributes: positions, alphas, colors, scales, rotations and spherical
// harmonics. The splat package holds the float representation, packed holds the
// quantized one, and this package ties them to files.
//
// # Basic Usage
//
// Loading a PLY-convention splat and writing it back:
//
//	s, err := spz.Load("scene.spz", spz.WithCoordinateSystem(coord.PLY))
//	if err != nil {
//	    return err
//	}
//	fmt.Print(s.Summary())
//
//	err = spz.Save(s, "out/scene.spz", spz.WithSaveCoordinateSystem(coord.PLY))
//
// Reading only the header:
//
//	h, err := spz.ReadHeader("scene.spz")
//
// # Coordinate Systems
//
// Files are stored in Right-Up-Back (RUB). Loading with a coordinate system converts
// from RUB; saving with one converts into RUB. coord.Unspecified skips conversion.
//
// # Compression
//
// Files written with the default gzip compression are standard .spz files. Zstd, S2, LZ4
// and uncompressed payloads can be written with WithCompression; loading detects all of
// them from their leading bytes.
package spz
