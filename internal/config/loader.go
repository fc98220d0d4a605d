// Package config loads RegionConfig from a YAML file or from CLI flag
// values. Domain validation lives in models.NewRegionConfig; this package
// only handles file access, parsing, and required-key checks.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/johnayers/aws-vault-shuffle/internal/models"
)

// fileConfig mirrors the YAML configuration file layout.
type fileConfig struct {
	SourceAccount string   `yaml:"source_account"`
	Regions       []string `yaml:"regions"`
	AssumeRoleARN string   `yaml:"assume_role_arn"`
	ExternalID    string   `yaml:"external_id"`
	SessionName   string   `yaml:"session_name"`
}

// LoadFromYAML reads and validates the configuration file at path.
//
// A missing file is surfaced before any cloud call is attempted;
// errors.Is(err, fs.ErrNotExist) holds in that case. Missing required keys
// and malformed YAML are reported as errors; value validation is delegated
// to models.NewRegionConfig.
func LoadFromYAML(path string) (models.RegionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.RegionConfig{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return models.RegionConfig{}, fmt.Errorf("parse config file %q: %w", path, err)
	}

	if fc.SourceAccount == "" {
		return models.RegionConfig{}, fmt.Errorf("config file %q must specify source_account", path)
	}
	if len(fc.Regions) == 0 {
		return models.RegionConfig{}, fmt.Errorf("config file %q must specify regions", path)
	}

	return models.NewRegionConfig(models.RegionConfigParams{
		SourceAccount: fc.SourceAccount,
		Regions:       fc.Regions,
		AssumeRoleARN: fc.AssumeRoleARN,
		ExternalID:    fc.ExternalID,
		SessionName:   fc.SessionName,
	})
}

// LoadFromFlags assembles a RegionConfig from CLI flag values. Region entries
// are trimmed and empty entries dropped, so "us-east-1, us-west-2" and a
// trailing comma both parse cleanly.
func LoadFromFlags(account string, regions []string, roleARN, externalID, sessionName string) (models.RegionConfig, error) {
	cleaned := make([]string, 0, len(regions))
	for _, region := range regions {
		if trimmed := strings.TrimSpace(region); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return models.NewRegionConfig(models.RegionConfigParams{
		SourceAccount: account,
		Regions:       cleaned,
		AssumeRoleARN: roleARN,
		ExternalID:    externalID,
		SessionName:   sessionName,
	})
}
