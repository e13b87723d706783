// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"
)

// SearchRoutes asks the backend for candidate routes between two
// locations. The response is a page whose content is the route list;
// the console never paginates routes independently of the search, so
// only the content is returned. Order is preserved exactly as the
// backend sent it — the backend owns ranking and tie-breaks.
//
// Equal from and to ids are sent as-is; if the backend rejects them
// the resulting *APIError is surfaced like any other failure.
func (c *Client) SearchRoutes(ctx context.Context, fromLocationID, toLocationID int64) ([]Route, error) {
	var result Page[Route]
	query := url.Values{
		"fromLocationId": {strconv.FormatInt(fromLocationID, 10)},
		"toLocationId":   {strconv.FormatInt(toLocationID, 10)},
	}
	if err := c.getJSON(ctx, "/routes", query, &result); err != nil {
		return nil, err
	}
	return result.Content, nil
}
