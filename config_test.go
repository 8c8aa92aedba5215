package spz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/spz/coord"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
coordinate_system: right-down-front
read_strategy: buffered
compression: zstd
compression_level: 7
create_dirs: false
`))
	require.NoError(t, err)
	require.Equal(t, "right-down-front", cfg.CoordinateSystem)
	require.NotNil(t, cfg.CompressionLevel)
	require.Equal(t, 7, *cfg.CompressionLevel)
	require.NotNil(t, cfg.CreateDirs)
	require.False(t, *cfg.CreateDirs)

	loadOpts, err := cfg.LoadOptions()
	require.NoError(t, err)
	l, err := NewLoader(loadOpts...)
	require.NoError(t, err)
	require.Equal(t, coord.RightDownFront, l.cfg.coordinateSystem)
	require.Equal(t, format.ReadBuffered, l.cfg.readStrategy)

	saveOpts, err := cfg.SaveOptions()
	require.NoError(t, err)
	sv, err := NewSaver(saveOpts...)
	require.NoError(t, err)
	require.Equal(t, coord.RightDownFront, sv.cfg.coordinateSystem)
	require.Equal(t, format.CompressionZstd, sv.codec.Type())
	require.Equal(t, 7, sv.cfg.level)
	require.False(t, sv.cfg.createDirs)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"))
	require.NoError(t, err)

	saveOpts, err := cfg.SaveOptions()
	require.NoError(t, err)
	sv, err := NewSaver(saveOpts...)
	require.NoError(t, err)
	require.Equal(t, format.CompressionGzip, sv.codec.Type())
	require.True(t, sv.cfg.createDirs)
	require.Equal(t, coord.Unspecified, sv.cfg.coordinateSystem)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{"coordinate system", "coordinate_system: sideways", errs.ErrInvalidCoordinateSystem},
		{"read strategy", "read_strategy: telepathy", errs.ErrInvalidReadStrategy},
		{"compression", "compression: rar", errs.ErrUnknownCompression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := ParseConfig([]byte("compression_level: [1, 2"))
	require.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("coordinate_system: PLY\n"), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, "PLY", cfg.CoordinateSystem)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, errs.ErrIO)
}
