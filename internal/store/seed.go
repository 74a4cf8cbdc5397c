package store

import (
	"fmt"
	"os"

	"github.com/agenthands/carelens/internal/core/model"
	"gopkg.in/yaml.v3"
)

// Seed is a YAML fixture of clients and the raw text of their notes. Notes
// carry no analysis; they are enriched as they are created.
type Seed struct {
	Clients []SeedClient `yaml:"clients"`
}

type SeedClient struct {
	model.Client `yaml:",inline"`
	Notes        []SeedNote `yaml:"notes"`
}

type SeedNote struct {
	Author string `yaml:"author"`
	Text   string `yaml:"text"`
}

func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file '%s': %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	for i, c := range seed.Clients {
		if c.ID == "" {
			return Seed{}, fmt.Errorf("seed client %d has no id", i)
		}
	}
	return seed, nil
}
