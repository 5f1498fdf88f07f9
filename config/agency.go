package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/linesmerrill/fir-document-api/models"
)

// istOffset is used when the host has no time zone database
const istOffset = 5*60*60 + 30*60

// LoadAgency reads an agency profile from a YAML file. Fields missing from
// the file, or every field when path is empty, come from the default
// profile.
func LoadAgency(path string) (models.Agency, error) {
	if path == "" {
		return models.DefaultAgency(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return models.Agency{}, fmt.Errorf("failed to read agency profile: %w", err)
	}
	var agency models.Agency
	if err := yaml.Unmarshal(b, &agency); err != nil {
		return models.Agency{}, fmt.Errorf("failed to parse agency profile %s: %w", path, err)
	}
	return agency.WithDefaults(), nil
}

// Location resolves an IANA zone name. Asia/Kolkata falls back to a fixed
// +05:30 zone, anything else unknown to UTC.
func Location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	if name == "Asia/Kolkata" {
		return time.FixedZone("IST", istOffset)
	}
	zap.S().Warnw("unknown time zone, using UTC", "timeZone", name, "error", err)
	return time.UTC
}
