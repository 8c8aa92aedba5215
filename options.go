package spz

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/spz/compress"
	"github.com/arloliu/spz/coord"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
	"github.com/arloliu/spz/internal/options"
)

var discardLogger = slog.New(slog.DiscardHandler)

// LoadConfig holds the settings of a Loader.
type LoadConfig struct {
	coordinateSystem coord.CoordinateSystem
	readStrategy     format.ReadStrategy
	compression      format.CompressionType // 0 means detect
	logger           *slog.Logger
}

func newLoadConfig() *LoadConfig {
	return &LoadConfig{
		coordinateSystem: coord.Unspecified,
		readStrategy:     format.ReadAuto,
		logger:           discardLogger,
	}
}

// LoadOption configures a Loader.
type LoadOption = options.Option[*LoadConfig]

// WithCoordinateSystem sets the convention loaded splats are converted into.
//
// The default, coord.Unspecified, returns the stored RUB data unchanged.
func WithCoordinateSystem(cs coord.CoordinateSystem) LoadOption {
	return options.New(func(c *LoadConfig) error {
		if !cs.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCoordinateSystem, uint8(cs))
		}
		c.coordinateSystem = cs

		return nil
	})
}

// WithReadStrategy selects how files are read. The default is format.ReadAuto.
func WithReadStrategy(strategy format.ReadStrategy) LoadOption {
	return options.New(func(c *LoadConfig) error {
		switch strategy {
		case format.ReadAuto, format.ReadMmap, format.ReadBuffered:
			c.readStrategy = strategy
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidReadStrategy, uint8(strategy))
		}
	})
}

// WithSourceCompression forces the decompressor instead of detecting it from magic bytes.
func WithSourceCompression(compressionType format.CompressionType) LoadOption {
	return options.New(func(c *LoadConfig) error {
		if _, err := compress.GetCodec(compressionType); err != nil {
			return err
		}
		c.compression = compressionType

		return nil
	})
}

// WithLogger sets the logger for debug records at I/O boundaries. Nil restores the
// default discard logger.
func WithLogger(logger *slog.Logger) LoadOption {
	return options.NoError(func(c *LoadConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	})
}

// SaveConfig holds the settings of a Saver.
type SaveConfig struct {
	coordinateSystem coord.CoordinateSystem
	compression      format.CompressionType
	level            int
	createDirs       bool
	logger           *slog.Logger
}

func newSaveConfig() *SaveConfig {
	return &SaveConfig{
		coordinateSystem: coord.Unspecified,
		compression:      format.CompressionGzip,
		level:            compress.DefaultLevel,
		createDirs:       true,
		logger:           discardLogger,
	}
}

// SaveOption configures a Saver.
type SaveOption = options.Option[*SaveConfig]

// WithSaveCoordinateSystem sets the convention the saved splat is authored in. The data
// is converted into RUB while it is quantized.
func WithSaveCoordinateSystem(cs coord.CoordinateSystem) SaveOption {
	return options.New(func(c *SaveConfig) error {
		if !cs.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCoordinateSystem, uint8(cs))
		}
		c.coordinateSystem = cs

		return nil
	})
}

// WithCompression selects the container compression. Only format.CompressionGzip
// produces a standard .spz file; the others are read back by this package only.
func WithCompression(compressionType format.CompressionType) SaveOption {
	return options.New(func(c *SaveConfig) error {
		if _, err := compress.GetCodec(compressionType); err != nil {
			return err
		}
		c.compression = compressionType

		return nil
	})
}

// WithCompressionLevel sets an algorithm specific level, compress.DefaultLevel for the default.
func WithCompressionLevel(level int) SaveOption {
	return options.NoError(func(c *SaveConfig) {
		c.level = level
	})
}

// WithCreateDirs controls whether missing parent directories are created. Enabled by default.
func WithCreateDirs(enabled bool) SaveOption {
	return options.NoError(func(c *SaveConfig) {
		c.createDirs = enabled
	})
}

// WithSaveLogger sets the logger for debug records at I/O boundaries.
func WithSaveLogger(logger *slog.Logger) SaveOption {
	return options.NoError(func(c *SaveConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	})
}
