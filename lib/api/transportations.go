// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListTransportations fetches one page of transportations. The
// embedded from/to locations are resolved by the backend.
func (c *Client) ListTransportations(ctx context.Context, page, size int) (Page[Transportation], error) {
	var result Page[Transportation]
	query := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	if err := c.getJSON(ctx, "/transportations", query, &result); err != nil {
		return Page[Transportation]{}, err
	}
	return result, nil
}

// GetTransportation fetches a single transportation by id.
func (c *Client) GetTransportation(ctx context.Context, id int64) (Transportation, error) {
	var result Transportation
	if err := c.getJSON(ctx, fmt.Sprintf("/transportations/%d", id), nil, &result); err != nil {
		return Transportation{}, err
	}
	return result, nil
}

// CreateTransportation creates a transportation from the id-based
// write shape and returns the stored read model.
func (c *Client) CreateTransportation(ctx context.Context, request TransportationRequest) (Transportation, error) {
	var result Transportation
	if err := c.writeJSON(ctx, http.MethodPost, "/transportations", request, &result); err != nil {
		return Transportation{}, err
	}
	return result, nil
}

// UpdateTransportation replaces all editable fields of a
// transportation.
func (c *Client) UpdateTransportation(ctx context.Context, id int64, request TransportationRequest) (Transportation, error) {
	var result Transportation
	if err := c.writeJSON(ctx, http.MethodPut, fmt.Sprintf("/transportations/%d", id), request, &result); err != nil {
		return Transportation{}, err
	}
	return result, nil
}

// DeleteTransportation deletes a transportation by id.
func (c *Client) DeleteTransportation(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/transportations/%d", id), nil, nil)
	return err
}
