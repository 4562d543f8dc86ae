package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/riskibarqy/fantasy-league-snapshot/internal/domain/leaguehistory"
)

type rosterFileEntry struct {
	Name    string `koanf:"name"`
	EntryID string `koanf:"entry_id"`
}

// LoadRosterFile reads participants from a YAML file shaped as
//
//	participants:
//	  - name: Scott
//	    entry_id: 2408847
func LoadRosterFile(path string) ([]leaguehistory.Participant, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read roster file %s: %w", path, err)
	}

	var entries []rosterFileEntry
	if err := k.UnmarshalWithConf("participants", &entries, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode roster file %s: %w", path, err)
	}

	out := make([]leaguehistory.Participant, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		entryID := strings.TrimSpace(entry.EntryID)
		if name == "" || entryID == "" {
			return nil, fmt.Errorf("participant #%d: name and entry_id are required", i+1)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate participant name %q", name)
		}
		seen[name] = struct{}{}
		out = append(out, leaguehistory.Participant{Name: name, EntryID: entryID})
	}
	return out, nil
}
