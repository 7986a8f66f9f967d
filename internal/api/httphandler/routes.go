package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/blocks")

	r.Get("/count", h.GetBlocksCount)
	r.Get("/", h.GetBlocks)
	return nil
}
