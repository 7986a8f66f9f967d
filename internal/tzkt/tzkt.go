package tzkt

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/common/errs"
	"github.com/gaze-network/blocks-explorer/core/types"
	"github.com/gaze-network/blocks-explorer/pkg/httpclient"
	"github.com/gaze-network/blocks-explorer/pkg/logger"
	"github.com/gaze-network/blocks-explorer/pkg/logger/slogx"
)

// DefaultBaseURL is the blocks endpoint of the public mumbainet indexer.
const DefaultBaseURL = "https://api.mumbainet.tzkt.io/v1/blocks"

type Config struct {
	BaseURL string            `mapstructure:"base_url"`
	Debug   bool              `mapstructure:"debug"`
	Headers map[string]string `mapstructure:"headers"`
}

// Client reads blocks from a TzKT indexer.
type Client struct {
	httpClient *httpclient.Client
}

func New(config Config) (*Client, error) {
	baseURL := utils.Default(config.BaseURL, DefaultBaseURL)
	httpClient, err := httpclient.New(baseURL, httpclient.Config{
		Debug:   config.Debug,
		Headers: config.Headers,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{
		httpClient: httpClient,
	}, nil
}

// GetBlocksCount returns the total number of blocks.
// Failures are logged and reported as ok=false instead of an error.
func (c *Client) GetBlocksCount(ctx context.Context) (count uint64, ok bool) {
	count, err := c.FetchBlocksCount(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get blocks count", err, slog.String("package", "tzkt"))
		return 0, false
	}
	return count, true
}

// FetchBlocksCount is like GetBlocksCount but returns the error to the caller.
func (c *Client) FetchBlocksCount(ctx context.Context) (uint64, error) {
	resp, err := c.httpClient.Get(ctx, "/count", httpclient.RequestOptions{})
	if err != nil {
		return 0, errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, errors.WithDetailf(errors.WithStack(errs.BackendError), "status code: %d, url: %s", resp.StatusCode(), resp.URL)
	}

	var count uint64
	if err := resp.DecodeJSON(&count); err != nil {
		return 0, errors.Wrap(err, "can't parse blocks count")
	}

	logger.InfoContext(ctx, "Blocks count is retrieved", slogx.Uint64("count", count))
	return count, nil
}

// GetBlocks returns a page of blocks in the order the indexer returns them.
func (c *Client) GetBlocks(ctx context.Context, query BlocksQuery) ([]types.Block, error) {
	if err := query.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.httpClient.Get(ctx, "", httpclient.RequestOptions{
		RawQuery: query.RawQuery(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.WithDetailf(errors.WithStack(errs.BackendError), "status code: %d, url: %s", resp.StatusCode(), resp.URL)
	}

	var blocks []types.Block
	if err := resp.DecodeJSON(&blocks); err != nil {
		return nil, errors.Wrap(err, "can't parse blocks")
	}
	return blocks, nil
}
