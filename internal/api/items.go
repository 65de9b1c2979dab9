package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gravitrone/pagelist/internal/list"
)

// Query parameter names understood by the item endpoint.
const (
	ParamPageNumber = "page_number"
	ParamPageSize   = "page_size"
	ParamSearchText = "search_text"
)

// QueryItems fetches one page of items from endpoint.
func (c *Client) QueryItems(ctx context.Context, endpoint string, req list.PageRequest) ([]list.Item, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	path := buildQuery(endpoint, QueryParams{
		ParamPageNumber: strconv.Itoa(req.PageNumber),
		ParamPageSize:   strconv.Itoa(req.PageSize),
		ParamSearchText: req.SearchText,
	})
	data, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	records, err := decodeList[JSONMap](data)
	if err != nil {
		return nil, err
	}

	items := make([]list.Item, 0, len(records))
	for i, rec := range records {
		item, err := list.ItemFromMap(rec)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	c.log.Debug().
		Int("page", req.PageNumber).
		Str("query", req.SearchText).
		Int("count", len(items)).
		Msg("items fetched")
	return items, nil
}

// Fetcher adapts the client to list.Fetcher for endpoint.
func (c *Client) Fetcher(endpoint string) list.Fetcher {
	return list.FetchFunc(func(ctx context.Context, req list.PageRequest) ([]list.Item, error) {
		return c.QueryItems(ctx, endpoint, req)
	})
}
