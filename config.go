package spz

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/spz/coord"
	"github.com/arloliu/spz/errs"
	"github.com/arloliu/spz/format"
)

// Config is the declarative form of the load and save options.
//
//	coordinate_system: RDF
//	read_strategy: mmap
//	compression: gzip
//	compression_level: 9
//	create_dirs: false
//
// Empty strings and absent fields keep the defaults.
type Config struct {
	CoordinateSystem string `yaml:"coordinate_system"`
	ReadStrategy     string `yaml:"read_strategy"`
	Compression      string `yaml:"compression"`
	CompressionLevel *int   `yaml:"compression_level"`
	CreateDirs       *bool  `yaml:"create_dirs"`
}

// ParseConfig decodes YAML and checks that every name resolves.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfigFile reads and parses the YAML file at path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errs.IO("read config "+path, err)
	}

	return ParseConfig(data)
}

// Validate reports the first name that does not resolve.
func (c Config) Validate() error {
	if _, err := coord.Parse(c.CoordinateSystem); err != nil {
		return err
	}
	if _, err := format.ParseReadStrategy(c.ReadStrategy); err != nil {
		return err
	}
	if _, err := format.ParseCompressionType(c.Compression); err != nil {
		return err
	}

	return nil
}

// LoadOptions converts the config into loader options.
func (c Config) LoadOptions() ([]LoadOption, error) {
	cs, err := coord.Parse(c.CoordinateSystem)
	if err != nil {
		return nil, err
	}
	strategy, err := format.ParseReadStrategy(c.ReadStrategy)
	if err != nil {
		return nil, err
	}

	return []LoadOption{WithCoordinateSystem(cs), WithReadStrategy(strategy)}, nil
}

// SaveOptions converts the config into saver options.
func (c Config) SaveOptions() ([]SaveOption, error) {
	cs, err := coord.Parse(c.CoordinateSystem)
	if err != nil {
		return nil, err
	}
	compressionType, err := format.ParseCompressionType(c.Compression)
	if err != nil {
		return nil, err
	}

	opts := []SaveOption{WithSaveCoordinateSystem(cs), WithCompression(compressionType)}
	if c.CompressionLevel != nil {
		opts = append(opts, WithCompressionLevel(*c.CompressionLevel))
	}
	if c.CreateDirs != nil {
		opts = append(opts, WithCreateDirs(*c.CreateDirs))
	}

	return opts, nil
}
