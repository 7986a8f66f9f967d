package tzkt

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/common/errs"
	"github.com/samber/lo"
)

// BlocksQuery describes which blocks page to fetch and how.
type BlocksQuery struct {
	// Select limits the returned fields. Empty means all fields.
	Select []string

	// Page is a zero-based page offset. nil means the indexer default.
	Page *int

	// SortBy is the field to sort by. Empty means the indexer default order.
	SortBy string

	// SortDesc reverses the order. Ignored if SortBy is empty.
	SortDesc bool
}

func (q BlocksQuery) Validate() error {
	if q.Page != nil && *q.Page < 0 {
		return errors.Wrapf(errs.InvalidArgument, "page must not be negative, got %d", *q.Page)
	}
	return nil
}

// SelectFields returns the trimmed, de-duplicated field names in their original order.
func (q BlocksQuery) SelectFields() []string {
	fields := lo.Map(q.Select, func(item string, _ int) string { return strings.TrimSpace(item) })
	fields = lo.Filter(fields, func(item string, _ int) bool { return item != "" })
	return lo.Uniq(fields)
}

// RawQuery returns the url query without the leading "?".
//
// The indexer expects parameters in this exact order: select, offset.pg, sort (or sort.desc).
func (q BlocksQuery) RawQuery() string {
	params := make([]string, 0, 3)
	if fields := q.SelectFields(); len(fields) > 0 {
		fields = lo.Map(fields, func(item string, _ int) string { return url.QueryEscape(item) })
		params = append(params, "select="+strings.Join(fields, ","))
	}
	if q.Page != nil {
		params = append(params, "offset.pg="+strconv.Itoa(*q.Page))
	}
	if sortBy := strings.TrimSpace(q.SortBy); sortBy != "" {
		key := "sort"
		if q.SortDesc {
			key = "sort.desc"
		}
		params = append(params, key+"="+url.QueryEscape(sortBy))
	}
	return strings.Join(params, "&")
}

// Encode returns the url query with the leading "?", or an empty string if there are no parameters.
func (q BlocksQuery) Encode() string {
	raw := q.RawQuery()
	if raw == "" {
		return ""
	}
	return "?" + raw
}
