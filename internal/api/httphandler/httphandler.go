package httphandler

import (
	"github.com/gaze-network/blocks-explorer/core/types"
	"github.com/gaze-network/blocks-explorer/internal/datagateway"
	"github.com/gaze-network/blocks-explorer/pkg/formatter"
)

type HttpHandler struct {
	blocks    datagateway.BlocksDataGateway
	formatter *formatter.Formatter
}

func New(blocks datagateway.BlocksDataGateway, formatter *formatter.Formatter) *HttpHandler {
	return &HttpHandler{
		blocks:    blocks,
		formatter: formatter,
	}
}

type blockRow struct {
	Block         types.Block `json:"block"`
	TimestampText string      `json:"timestampText"`
	ProposerText  string      `json:"proposerText"`
}

// newBlockRow adds display texts to a block. Fields that are not selected render as empty strings.
func (h *HttpHandler) newBlockRow(block types.Block) (blockRow, error) {
	row := blockRow{
		Block:        block,
		ProposerText: formatter.FormatProposer(block.Proposer()),
	}
	if ts, ok := block.Timestamp(); ok {
		text, err := h.formatter.FormatTimestamp(ts)
		if err != nil {
			return blockRow{}, err
		}
		row.TimestampText = text
	}
	return row, nil
}
