package config

import (
	"fmt"
	"os"

	"github.com/cbodonnell/beastball/pkg/game/constants"
	"gopkg.in/yaml.v3"
)

// BotEntry seats Count AI players of one strategy.
type BotEntry struct {
	Strategy string `yaml:"strategy"`
	Count    int    `yaml:"count"`
}

// BotRoster is the lobby auto-fill file.
type BotRoster struct {
	Bots []BotEntry `yaml:"bots"`
}

// LoadBots reads a bot roster. A missing count means one.
func LoadBots(path string) (*BotRoster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bots file: %v", err)
	}
	return ParseBots(b)
}

func ParseBots(b []byte) (*BotRoster, error) {
	roster := &BotRoster{}
	if err := yaml.Unmarshal(b, roster); err != nil {
		return nil, fmt.Errorf("failed to parse bots file: %v", err)
	}
	total := 0
	for i := range roster.Bots {
		entry := &roster.Bots[i]
		if entry.Strategy == "" {
			return nil, fmt.Errorf("bot %d has no strategy", i)
		}
		if entry.Count == 0 {
			entry.Count = 1
		}
		if entry.Count < 0 {
			return nil, fmt.Errorf("bot %s has a negative count", entry.Strategy)
		}
		total += entry.Count
	}
	if total > constants.MaxPlayers {
		return nil, fmt.Errorf("bots file seats %d players, the lobby has %d slots", total, constants.MaxPlayers)
	}
	return roster, nil
}

// Strategies expands the roster into one strategy key per seat, in file order.
func (r *BotRoster) Strategies() []string {
	var out []string
	for _, entry := range r.Bots {
		for i := 0; i < entry.Count; i++ {
			out = append(out, entry.Strategy)
		}
	}
	return out
}
