package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into the provided struct and returns the
// keys present in the file that did not map onto any field.
func LoadTOMLFile(configPath string, config any) ([]string, error) {
	meta, err := toml.DecodeFile(configPath, config)
	if err != nil {
		log.Debugf("TOML parsing error in config file %s: %v", configPath, err)
		return nil, err
	}
	var undecoded []string
	for _, key := range meta.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}
