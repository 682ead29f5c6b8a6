package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"material-manager/core/logger"
	"material-manager/core/material"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Convert holds the default conversion options.
	Convert ConvertConfig `mapstructure:"convert"`
	// Batch holds settings for batch runs.
	Batch BatchConfig `mapstructure:"batch"`
}

// ConvertConfig holds the default conversion options. Each field
// mirrors one engine or export option; CLI flags may override
// individual fields per invocation.
type ConvertConfig struct {
	// SimplifyTexturePath reduces exported texture paths to their final component.
	SimplifyTexturePath bool `mapstructure:"simplify_texture_path" default:"false"`
	// SimplifyMaterialPath reduces the exported MTD path to its final component.
	SimplifyMaterialPath bool `mapstructure:"simplify_material_path" default:"false"`
	// MigrateParameters is carried for round-trip compatibility.
	MigrateParameters bool `mapstructure:"migrate_parameters" default:"true"`
	// PreferPerfectMatch enables exact index+type matching.
	PreferPerfectMatch bool `mapstructure:"prefer_perfect_match" default:"true"`
	// PreferMarkedCoverage enables type matching onto marked target slots.
	PreferMarkedCoverage bool `mapstructure:"prefer_marked_coverage" default:"true"`
	// AllowOrderAdjustment enables local conflict resolution.
	AllowOrderAdjustment bool `mapstructure:"allow_order_adjustment" default:"true"`
	// MaxOrderAdjustments is the per-conversion adjustment budget.
	MaxOrderAdjustments int32 `mapstructure:"max_order_adjustments" default:"3"`
	// StrictOrderValidation enables the global order check and repair pass.
	StrictOrderValidation bool `mapstructure:"strict_order_validation" default:"true"`
}

// Options converts the configured defaults into engine options.
func (c ConvertConfig) Options() material.ConversionOptions {
	return material.ConversionOptions{
		SimplifyTexturePath:   c.SimplifyTexturePath,
		SimplifyMaterialPath:  c.SimplifyMaterialPath,
		MigrateParameters:     c.MigrateParameters,
		PreferPerfectMatch:    c.PreferPerfectMatch,
		PreferMarkedCoverage:  c.PreferMarkedCoverage,
		AllowOrderAdjustment:  c.AllowOrderAdjustment,
		MaxOrderAdjustments:   c.MaxOrderAdjustments,
		StrictOrderValidation: c.StrictOrderValidation,
	}
}

// BatchConfig holds settings for batch runs.
type BatchConfig struct {
	// Workers bounds parallel target conversions in one run.
	Workers int `mapstructure:"workers" default:"4"`
}

// LoadConfig loads configuration from an optional config.yaml in path,
// a .env overlay, and environment variables.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Map environment variables to nested keys (e.g. LOG_LEVEL -> log.level)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
