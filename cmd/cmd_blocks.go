package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/core/types"
	"github.com/gaze-network/blocks-explorer/internal/config"
	"github.com/gaze-network/blocks-explorer/internal/tzkt"
	"github.com/gaze-network/blocks-explorer/pkg/formatter"
	"github.com/gaze-network/blocks-explorer/pkg/logger"
	"github.com/gaze-network/blocks-explorer/pkg/logger/slogx"
	"github.com/gaze-network/blocks-explorer/pkg/throttle"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// columns rendered when no fields are selected
var defaultColumns = []string{"level", "timestamp", "proposer", "hash"}

func NewBlocksCommand() *cobra.Command {
	blocksCmd := &cobra.Command{
		Use:   "blocks",
		Short: "Browse blocks from the indexer",
	}
	blocksCmd.AddCommand(
		newBlocksCountCommand(),
		newBlocksListCommand(),
		newBlocksWatchCommand(),
	)
	return blocksCmd
}

func newBlocksCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show the number of blocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := tzkt.New(config.Load().Indexer)
			if err != nil {
				return errors.Wrap(err, "invalid indexer configuration")
			}

			count, ok := client.GetBlocksCount(cmd.Context())
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "unknown")
				return errors.WithStack(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			return errors.WithStack(err)
		},
	}
}

type blocksListCmdOptions struct {
	Select   []string
	Page     int
	SortBy   string
	SortDesc bool
}

func newBlocksListCommand() *cobra.Command {
	opts := &blocksListCmdOptions{}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a page of blocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := tzkt.BlocksQuery{
				Select:   opts.Select,
				SortBy:   opts.SortBy,
				SortDesc: opts.SortDesc,
			}
			if cmd.Flags().Changed("page") {
				query.Page = lo.ToPtr(opts.Page)
			}
			return blocksListHandler(cmd.Context(), cmd.OutOrStdout(), query)
		},
	}

	flags := listCmd.Flags()
	flags.StringSliceVar(&opts.Select, "select", nil, "fields to return, E.g. `level,timestamp,proposer`")
	flags.IntVar(&opts.Page, "page", 0, "zero-based page offset")
	flags.StringVar(&opts.SortBy, "sort", "", "field to sort by, E.g. `level`")
	flags.BoolVar(&opts.SortDesc, "desc", false, "sort in descending order")

	return listCmd
}

func blocksListHandler(ctx context.Context, out io.Writer, query tzkt.BlocksQuery) error {
	conf := config.Load()
	client, err := tzkt.New(conf.Indexer)
	if err != nil {
		return errors.Wrap(err, "invalid indexer configuration")
	}
	f, err := formatter.New(conf.Formatter)
	if err != nil {
		return errors.Wrap(err, "invalid formatter configuration")
	}

	blocks, err := client.GetBlocks(ctx, query)
	if err != nil {
		return errors.Wrap(err, "can't get blocks")
	}

	columns := query.SelectFields()
	if len(columns) == 0 {
		columns = defaultColumns
	}
	return errors.WithStack(writeBlocksTable(out, f, columns, blocks))
}

func newBlocksWatchCommand() *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the latest blocks whenever the blocks count changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return blocksWatchHandler(cmd.Context(), cmd.OutOrStdout(), config.Load())
		},
	}

	flags := watchCmd.Flags()
	flags.Duration("interval", 2*time.Second, "interval between blocks count polls")
	flags.Duration("throttle", 5*time.Second, "minimum delay before the latest blocks are shown again")
	flags.Int("limit", 10, "number of latest blocks to show")

	config.BindPFlag("watch.interval", flags.Lookup("interval"))
	config.BindPFlag("watch.throttle", flags.Lookup("throttle"))
	config.BindPFlag("watch.limit", flags.Lookup("limit"))

	return watchCmd
}

func blocksWatchHandler(ctx context.Context, out io.Writer, conf config.Config) error {
	if conf.Watch.Interval <= 0 {
		return errors.Errorf("watch interval must be positive, got %s", conf.Watch.Interval)
	}
	client, err := tzkt.New(conf.Indexer)
	if err != nil {
		return errors.Wrap(err, "invalid indexer configuration")
	}
	f, err := formatter.New(conf.Formatter)
	if err != nil {
		return errors.Wrap(err, "invalid formatter configuration")
	}

	query := tzkt.BlocksQuery{
		Select:   defaultColumns,
		Page:     lo.ToPtr(0),
		SortBy:   "level",
		SortDesc: true,
	}
	render := throttle.New(func(counts ...uint64) {
		blocks, err := client.GetBlocks(ctx, query)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to get latest blocks", err)
			return
		}
		if conf.Watch.Limit > 0 && len(blocks) > conf.Watch.Limit {
			blocks = blocks[:conf.Watch.Limit]
		}
		fmt.Fprintf(out, "\nBlocks count: %d\n", counts[0])
		if err := writeBlocksTable(out, f, defaultColumns, blocks); err != nil {
			logger.ErrorContext(ctx, "Failed to render blocks", err)
		}
	}, conf.Watch.Throttle)
	defer render.Stop()

	var lastCount uint64
	poll := func() {
		count, ok := client.GetBlocksCount(ctx)
		if !ok || count == lastCount {
			return
		}
		logger.DebugContext(ctx, "Blocks count changed", slogx.Uint64("from", lastCount), slogx.Uint64("to", count))
		lastCount = count
		render.Do(count)
	}

	ticker := time.NewTicker(conf.Watch.Interval)
	defer ticker.Stop()

	poll()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			poll()
		}
	}
}

func writeBlocksTable(out io.Writer, f *formatter.Formatter, columns []string, blocks []types.Block) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(columns, "\t")))
	for _, block := range blocks {
		cells := make([]string, 0, len(columns))
		for _, column := range columns {
			cell, err := formatCell(f, block, column)
			if err != nil {
				return errors.Wrapf(err, "can't format %q", column)
			}
			cells = append(cells, cell)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return errors.WithStack(w.Flush())
}

func formatCell(f *formatter.Formatter, block types.Block, column string) (string, error) {
	switch column {
	case "timestamp":
		if ts, ok := block.Timestamp(); ok {
			return f.FormatTimestamp(ts)
		}
	case "proposer":
		if proposer := block.Proposer(); proposer != nil {
			return formatter.FormatProposer(proposer), nil
		}
	}

	switch value := block[column].(type) {
	case nil:
		return "-", nil
	case string:
		return value, nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(value), nil
	default:
		return fmt.Sprint(value), nil
	}
}
