package spz

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/spz/compress"
	"github.com/arloliu/spz/coord"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

func TestSave_RoundTripAllCompressions(t *testing.T) {
	s := testSplat(t, 300, 3)

	for _, ct := range []format.CompressionType{
		format.CompressionGzip, format.CompressionZstd, format.CompressionS2,
		format.CompressionLZ4, format.CompressionNone,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			path := saveTemp(t, s, WithCompression(ct), WithSaveCoordinateSystem(coord.GLB))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			detected, err := compress.Detect(data)
			require.NoError(t, err)
			require.Equal(t, ct, detected)

			got, err := Load(path, WithCoordinateSystem(coord.GLB))
			require.NoError(t, err)
			require.Equal(t, s.NumPoints, got.NumPoints)
			for i := range s.Positions {
				require.InDelta(t, s.Positions[i], got.Positions[i], 1.0/2048)
			}
		})
	}
}

func TestSave_DefaultIsStandardGzip(t *testing.T) {
	data, err := SaveBytes(testSplat(t, 2, 0))
	require.NoError(t, err)
	require.Equal(t, []byte{0x1f, 0x8b}, data[:2])
}

func TestSave_CreateDirs(t *testing.T) {
	s := testSplat(t, 2, 0)
	nested := filepath.Join(t.TempDir(), "a", "b", "scene.spz")

	err := Save(s, nested, WithCreateDirs(false))
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, Save(s, nested))
	_, err = os.Stat(nested)
	require.NoError(t, err)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.spz")

	require.NoError(t, Save(testSplat(t, 5, 1), path))
	require.NoError(t, Save(testSplat(t, 6, 1), path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "scene.spz", entries[0].Name())

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 6, got.NumPoints)
}

func TestSaveContext_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.spz")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := SaveContext(ctx, testSplat(t, 2, 0), path)
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSaveAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.spz")

	ch := SaveAsync(context.Background(), testSplat(t, 7, 0), path)
	require.NoError(t, <-ch)
	_, open := <-ch
	require.False(t, open)

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7, got.NumPoints)
}

func TestSave_Errors(t *testing.T) {
	s := testSplat(t, 2, 0)
	s.Alphas = nil

	_, err := SaveBytes(s)
	require.ErrorIs(t, err, errs.ErrInconsistentSizes)

	_, err = SaveBytes(testSplat(t, 1, 0), WithCompression(format.CompressionType(42)))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)

	_, err = SaveBytes(testSplat(t, 1, 0), WithSaveCoordinateSystem(coord.CoordinateSystem(9)))
	require.ErrorIs(t, err, errs.ErrInvalidCoordinateSystem)
}

func TestSaver_LogsCompressionStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sv, err := NewSaver(WithSaveLogger(logger), WithCompression(format.CompressionZstd), WithCompressionLevel(3))
	require.NoError(t, err)

	_, err = sv.Bytes(testSplat(t, 100, 1))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "spz: encoded splat")
	require.Contains(t, out, "num_points=100")
	require.Contains(t, out, "original_bytes=")
	require.Contains(t, out, "ratio=")
}

func TestSaveBytes_EmptySplat(t *testing.T) {
	s := testSplat(t, 0, 0)

	data, err := SaveBytes(s)
	require.NoError(t, err)

	got, err := LoadBytes(data)
	require.NoError(t, err)
	require.Equal(t, 0, got.NumPoints)
	require.Empty(t, got.Positions)
}
