package lint

import (
	"sort"

	"github.com/leapstack-labs/hoshi/pkg/core"
)

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID              string        `json:"id" yaml:"id"`
	Name            string        `json:"name" yaml:"name"`
	Group           string        `json:"group" yaml:"group"`
	Description     string        `json:"description" yaml:"description"`
	DefaultSeverity core.Severity `json:"default_severity" yaml:"default_severity"`
	Message         string        `json:"message" yaml:"message"`
	Hint            string        `json:"hint,omitempty" yaml:"hint,omitempty"`
	ConfigKeys      []string      `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Rationale       string        `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	BadExample      string        `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample     string        `json:"good_example,omitempty" yaml:"good_example,omitempty"`
	Fix             string        `json:"fix,omitempty" yaml:"fix,omitempty"`
}

// Info extracts the documentation metadata of r.
func (r RuleDef) Info() RuleInfo {
	return RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		Message:         r.Message,
		Hint:            r.Hint,
		ConfigKeys:      r.ConfigKeys,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
		Fix:             r.Fix,
	}
}

// AllRules returns metadata for every registered rule, sorted by group
// then ID.
func AllRules() []RuleInfo {
	defs := GetAll()
	infos := make([]RuleInfo, len(defs))
	for i, d := range defs {
		infos[i] = d.Info()
	}
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Group != infos[j].Group {
			return infos[i].Group < infos[j].Group
		}
		return infos[i].ID < infos[j].ID
	})
	return infos
}
