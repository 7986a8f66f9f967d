package datagateway

import (
	"context"

	"github.com/gaze-network/blocks-explorer/core/types"
	"github.com/gaze-network/blocks-explorer/internal/tzkt"
)

type BlocksDataGateway interface {
	// GetBlocksCount returns ok=false if the count can't be retrieved.
	GetBlocksCount(ctx context.Context) (count uint64, ok bool)
	GetBlocks(ctx context.Context, query tzkt.BlocksQuery) ([]types.Block, error)
}

var _ BlocksDataGateway = (*tzkt.Client)(nil)
