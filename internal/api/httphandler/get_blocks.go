package httphandler

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/common"
	"github.com/gaze-network/blocks-explorer/common/errs"
	"github.com/gaze-network/blocks-explorer/core/types"
	"github.com/gaze-network/blocks-explorer/internal/tzkt"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type getBlocksRequest struct {
	// Select holds every `select` parameter, each one a comma-separated field list.
	Select   []string `query:"select"`
	Page     string   `query:"page"`
	SortBy   string   `query:"sortBy"`
	SortDesc bool     `query:"sortDesc"`
}

func (r getBlocksRequest) ToQuery() (tzkt.BlocksQuery, error) {
	query := tzkt.BlocksQuery{
		Select: lo.FlatMap(r.Select, func(fields string, _ int) []string {
			return strings.Split(fields, ",")
		}),
		SortBy:   r.SortBy,
		SortDesc: r.SortDesc,
	}

	var errList []error
	if r.Page != "" {
		page, err := strconv.Atoi(r.Page)
		if err != nil {
			errList = append(errList, errors.New("'page' must be an integer"))
		} else {
			query.Page = lo.ToPtr(page)
		}
	}
	if err := query.Validate(); err != nil {
		errList = append(errList, errors.New("'page' must not be negative"))
	}
	if err := errs.WithPublicMessage(errors.Join(errList...), "validation error"); err != nil {
		return tzkt.BlocksQuery{}, err
	}
	return query, nil
}

type getBlocksResult struct {
	// Count is the total number of blocks, null if the indexer couldn't provide it.
	Count  *uint64    `json:"count"`
	Blocks []blockRow `json:"blocks"`
}

type getBlocksResponse = common.HttpResponse[getBlocksResult]

func (h *HttpHandler) GetBlocks(ctx *fiber.Ctx) (err error) {
	var req getBlocksRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}
	query, err := req.ToQuery()
	if err != nil {
		return errors.WithStack(err)
	}

	var (
		count   uint64
		countOk bool
		blocks  []types.Block
	)
	group, groupCtx := errgroup.WithContext(ctx.UserContext())
	group.Go(func() error {
		count, countOk = h.blocks.GetBlocksCount(groupCtx)
		return nil
	})
	group.Go(func() error {
		var err error
		blocks, err = h.blocks.GetBlocks(groupCtx, query)
		return errors.Wrap(err, "error during GetBlocks")
	})
	if err := group.Wait(); err != nil {
		return errors.WithStack(err)
	}

	result := getBlocksResult{
		Blocks: make([]blockRow, 0, len(blocks)),
	}
	if countOk {
		result.Count = &count
	}
	for _, block := range blocks {
		row, err := h.newBlockRow(block)
		if err != nil {
			return errors.Wrap(err, "can't format block")
		}
		result.Blocks = append(result.Blocks, row)
	}

	return errors.WithStack(ctx.JSON(getBlocksResponse{
		Result: &result,
	}))
}
