package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a feed source: where the zipped feed is published
// and which file inside it feeds each entity type. Types absent from
// Tables keep their default file names.
type Manifest struct {
	Feed struct {
		// URL is the address of the zipped feed archive.
		URL string `yaml:"url"`
		// Version labels the feed revision, informational only.
		Version string `yaml:"version"`
		// Tables maps entity type names to feed file names.
		Tables map[string]string `yaml:"tables"`
	} `yaml:"feed"`
}

// LoadManifest reads and parses a feed manifest YAML file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	for name, file := range m.Feed.Tables {
		if file == "" {
			return nil, fmt.Errorf("manifest %s: empty file name for table %s", path, name)
		}
	}
	return &m, nil
}
