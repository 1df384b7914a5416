package model

import (
	"fmt"
	"strings"
)

// Rules picks the spin variant a table plays with.
type Rules string

const (
	// RulesShrinking consumes a safe chamber on every safe draw and forces
	// the fatal chamber at FinalChamberLives.
	RulesShrinking Rules = "shrinking"
	// RulesFixed draws from a fresh six-chamber pool every spin.
	RulesFixed Rules = "fixed"
)

func ParseRules(s string) (Rules, error) {
	switch Rules(strings.ToLower(strings.TrimSpace(s))) {
	case RulesShrinking, "":
		return RulesShrinking, nil
	case RulesFixed:
		return RulesFixed, nil
	default:
		return "", fmt.Errorf("unknown rules %q", s)
	}
}

func (r *Rules) UnmarshalText(text []byte) error {
	parsed, err := ParseRules(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
