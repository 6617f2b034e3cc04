// Package config loads optional-pointer JSON tuning parameters shared by the
// streaming assembler, the R-tree and DBSCAN. Fields omitted from the JSON
// file retain their built-in defaults, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for kernel tuning
// parameters. The schema is shared between startup configuration and
// runtime overrides, so the same JSON can seed both.
type TuningConfig struct {
	// Assembler params
	SeparationTime     *string  `json:"separation_time,omitempty"` // duration string like "30m"
	SeparationDistance *float64 `json:"separation_distance,omitempty"`
	MinimumLength      *int     `json:"minimum_length,omitempty"`

	// R-tree params
	RTreeNodeFanout *int `json:"rtree_node_fanout,omitempty"`

	// DBSCAN params
	DBSCANMinPoints *int `json:"dbscan_min_points,omitempty"`

	// Distance-geometry params
	DistanceGeometryLevels *int `json:"distance_geometry_levels,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.SeparationTime != nil && *c.SeparationTime != "" {
		if _, err := time.ParseDuration(*c.SeparationTime); err != nil {
			return fmt.Errorf("invalid separation_time %q: %w", *c.SeparationTime, err)
		}
	}
	if c.SeparationDistance != nil && *c.SeparationDistance < 0 {
		return fmt.Errorf("separation_distance must be non-negative, got %f", *c.SeparationDistance)
	}
	if c.MinimumLength != nil && *c.MinimumLength < 1 {
		return fmt.Errorf("minimum_length must be at least 1, got %d", *c.MinimumLength)
	}
	if c.RTreeNodeFanout != nil && *c.RTreeNodeFanout < 2 {
		return fmt.Errorf("rtree_node_fanout must be at least 2, got %d", *c.RTreeNodeFanout)
	}
	if c.DBSCANMinPoints != nil && *c.DBSCANMinPoints < 1 {
		return fmt.Errorf("dbscan_min_points must be at least 1, got %d", *c.DBSCANMinPoints)
	}
	if c.DistanceGeometryLevels != nil && *c.DistanceGeometryLevels < 1 {
		return fmt.Errorf("distance_geometry_levels must be at least 1, got %d", *c.DistanceGeometryLevels)
	}
	return nil
}

// GetSeparationTime parses and returns SeparationTime as a time.Duration.
func (c *TuningConfig) GetSeparationTime() time.Duration {
	if c.SeparationTime == nil || *c.SeparationTime == "" {
		return 30 * time.Minute
	}
	d, err := time.ParseDuration(*c.SeparationTime)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// GetSeparationDistance returns the separation_distance value or the default (km/domain units).
func (c *TuningConfig) GetSeparationDistance() float64 {
	if c.SeparationDistance == nil {
		return 100.0
	}
	return *c.SeparationDistance
}

// GetMinimumLength returns the minimum_length value or the default.
func (c *TuningConfig) GetMinimumLength() int {
	if c.MinimumLength == nil {
		return 2
	}
	return *c.MinimumLength
}

// GetRTreeNodeFanout returns the rtree_node_fanout value or the default.
func (c *TuningConfig) GetRTreeNodeFanout() int {
	if c.RTreeNodeFanout == nil {
		return 16
	}
	return *c.RTreeNodeFanout
}

// GetDBSCANMinPoints returns the dbscan_min_points value or the default.
func (c *TuningConfig) GetDBSCANMinPoints() int {
	if c.DBSCANMinPoints == nil {
		return 4
	}
	return *c.DBSCANMinPoints
}

// GetDistanceGeometryLevels returns the distance_geometry_levels value or the default.
func (c *TuningConfig) GetDistanceGeometryLevels() int {
	if c.DistanceGeometryLevels == nil {
		return 4
	}
	return *c.DistanceGeometryLevels
}
