// Package config loads the pattern sets, gazetteer and word lists that drive
// the extraction pipeline.
//
// The embedded default targets the Bengaluru market. Operators extend
// coverage by writing their own YAML file; keys missing from that file keep
// their default values.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Config is the full pipeline configuration. It is read-only once loaded.
type Config struct {
	Classifier     ClassifierConfig `yaml:"classifier"`
	Gazetteer      []string         `yaml:"gazetteer" validate:"dive,required"`
	GenericPhrases []string         `yaml:"generic_phrases" validate:"dive,required"`
	Noise          NoiseConfig      `yaml:"noise"`
}

// ClassifierConfig holds the offer rule table and the requirement rule.
type ClassifierConfig struct {
	Offers      []OfferRule     `yaml:"offers" validate:"required,min=1,dive"`
	Requirement RequirementRule `yaml:"requirement"`
}

// OfferRule maps a set of keyword patterns to a listing type.
// Rules earlier in the list win ties.
type OfferRule struct {
	Type     string   `yaml:"type" validate:"required"`
	Patterns []string `yaml:"patterns" validate:"required,min=1,dive,required"`
}

// RequirementRule detects messages seeking a property.
type RequirementRule struct {
	Patterns    []string     `yaml:"patterns" validate:"dive,required"`
	Refinements []Refinement `yaml:"refinements" validate:"dive"`
}

// Refinement narrows a requirement when any keyword occurs in the text.
type Refinement struct {
	Type     string   `yaml:"type" validate:"required"`
	Keywords []string `yaml:"keywords" validate:"required,min=1,dive,required"`
}

// NoiseConfig holds the word lists used to drop irrelevant messages.
type NoiseConfig struct {
	SystemNotices    []string `yaml:"system_notices" validate:"dive,required"`
	Salutations      []string `yaml:"salutations" validate:"dive,required"`
	ShortSalutations []string `yaml:"short_salutations" validate:"dive,required"`
	GroupTerms       []string `yaml:"group_terms" validate:"dive,required"`
	AttachmentPrefix string   `yaml:"attachment_prefix"`
	MinLength        int      `yaml:"min_length" validate:"gte=1"`
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing default config: %w", err)
	}
	return &cfg, nil
}

// Load reads the configuration at path layered over the default.
// An empty path returns the default.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the structural rules of a configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("invalid config: nil")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteDefault writes the embedded default to path. Existing files are left
// alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, defaultYAML, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
