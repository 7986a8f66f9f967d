package formatter

import "github.com/gaze-network/blocks-explorer/core/types"

// FormatProposer returns the display name of a block proposer: its alias if set, otherwise its address.
func FormatProposer(proposer *types.Proposer) string {
	if proposer == nil {
		return ""
	}
	if proposer.Alias != "" {
		return proposer.Alias
	}
	return proposer.Address
}
