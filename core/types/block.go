package types

import (
	"math"
)

// Block is a block record as returned by the indexer.
// Its shape depends on the selected fields, so it's kept as a raw JSON object.
type Block map[string]any

// Proposer is the baker credited with producing a block.
type Proposer struct {
	Alias   string `json:"alias,omitempty"`
	Address string `json:"address,omitempty"`
}

// Proposer returns the `proposer` field, or nil if it's absent or not an object.
func (b Block) Proposer() *Proposer {
	raw, ok := b["proposer"].(map[string]any)
	if !ok {
		return nil
	}
	proposer := &Proposer{}
	proposer.Alias, _ = raw["alias"].(string)
	proposer.Address, _ = raw["address"].(string)
	return proposer
}

// Timestamp returns the `timestamp` field if it's a string.
func (b Block) Timestamp() (string, bool) {
	ts, ok := b["timestamp"].(string)
	return ts, ok
}

// Level returns the `level` field if it's a non-negative integer.
func (b Block) Level() (uint64, bool) {
	level, ok := b["level"].(float64)
	if !ok || level < 0 || level != math.Trunc(level) {
		return 0, false
	}
	return uint64(level), true
}

// Hash returns the `hash` field if it's a string.
func (b Block) Hash() (string, bool) {
	hash, ok := b["hash"].(string)
	return hash, ok
}
