package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/common"
	"github.com/gofiber/fiber/v2"
)

type getBlocksCountResult struct {
	// Count is null if the indexer couldn't provide it.
	Count *uint64 `json:"count"`
}

type getBlocksCountResponse = common.HttpResponse[getBlocksCountResult]

func (h *HttpHandler) GetBlocksCount(ctx *fiber.Ctx) (err error) {
	result := getBlocksCountResult{}
	if count, ok := h.blocks.GetBlocksCount(ctx.UserContext()); ok {
		result.Count = &count
	}

	return errors.WithStack(ctx.JSON(getBlocksCountResponse{
		Result: &result,
	}))
}
