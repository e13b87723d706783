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

// ListLocations fetches one page of locations.
func (c *Client) ListLocations(ctx context.Context, page, size int) (Page[Location], error) {
	var result Page[Location]
	query := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	if err := c.getJSON(ctx, "/locations", query, &result); err != nil {
		return Page[Location]{}, err
	}
	return result, nil
}

// GetLocation fetches a single location by id.
func (c *Client) GetLocation(ctx context.Context, id int64) (Location, error) {
	var result Location
	if err := c.getJSON(ctx, fmt.Sprintf("/locations/%d", id), nil, &result); err != nil {
		return Location{}, err
	}
	return result, nil
}

// CreateLocation creates a location and returns the stored entity
// with its server-assigned id.
func (c *Client) CreateLocation(ctx context.Context, request LocationRequest) (Location, error) {
	var result Location
	if err := c.writeJSON(ctx, http.MethodPost, "/locations", request, &result); err != nil {
		return Location{}, err
	}
	return result, nil
}

// UpdateLocation replaces all editable fields of a location.
func (c *Client) UpdateLocation(ctx context.Context, id int64, request LocationRequest) (Location, error) {
	var result Location
	if err := c.writeJSON(ctx, http.MethodPut, fmt.Sprintf("/locations/%d", id), request, &result); err != nil {
		return Location{}, err
	}
	return result, nil
}

// DeleteLocation deletes a location by id.
func (c *Client) DeleteLocation(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/locations/%d", id), nil, nil)
	return err
}

// SearchLocations resolves a free-text query to location candidates
// for the endpoint pickers. The backend pages the result; the console
// only ever shows the first page of candidates.
func (c *Client) SearchLocations(ctx context.Context, query string) ([]SearchOption, error) {
	var result Page[Location]
	values := url.Values{"query": {query}}
	if err := c.getJSON(ctx, "/locations/search", values, &result); err != nil {
		return nil, err
	}

	options := make([]SearchOption, 0, len(result.Content))
	for _, location := range result.Content {
		options = append(options, SearchOption{ID: location.ID, Name: location.Name})
	}
	return options, nil
}
