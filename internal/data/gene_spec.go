package data

import (
	"fmt"
	"strings"
)

// TargetRule selects which combatants a gene's effects land on.
type TargetRule uint8

const (
	TargetSelf TargetRule = iota
	TargetRandomOpponent
	TargetAllOpponents
	TargetEveryone
)

// String returns human-readable target rule name.
func (t TargetRule) String() string {
	switch t {
	case TargetSelf:
		return "SELF"
	case TargetRandomOpponent:
		return "RANDOM_OPPONENT"
	case TargetAllOpponents:
		return "ALL_OPPONENTS"
	case TargetEveryone:
		return "EVERYONE"
	default:
		return "UNKNOWN"
	}
}

// ParseTargetRule resolves a spec-file target identifier.
// "us", "random_enemy" and "all_enemies" are accepted as aliases.
func ParseTargetRule(s string) (TargetRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "self", "us":
		return TargetSelf, nil
	case "random_opponent", "random_enemy":
		return TargetRandomOpponent, nil
	case "all_opponents", "all_enemies":
		return TargetAllOpponents, nil
	case "everyone":
		return TargetEveryone, nil
	default:
		return 0, fmt.Errorf("unknown target rule %q", s)
	}
}

// GeneSpec is the immutable authored definition of a gene.
type GeneSpec struct {
	Name    string
	Text    string
	Target  TargetRule
	Effects []Effect
}

// EnemySpec is the immutable authored definition of an enemy.
type EnemySpec struct {
	Name   string
	Health uint8
	Energy uint8
	Genome []string
}
