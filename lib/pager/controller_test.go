// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package pager

import (
	"errors"
	"testing"

	"github.com/routedeck/routedeck/lib/api"
)

// page builds an api.Page of location names for a 21-element dataset
// with page size 10.
func page(names []string, number int) api.Page[api.Location] {
	content := make([]api.Location, len(names))
	for i, name := range names {
		content[i] = api.Location{ID: int64(number*10 + i + 1), Name: name}
	}
	return api.Page[api.Location]{
		Content:       content,
		TotalElements: 21,
		TotalPages:    3,
		Size:          10,
		Number:        number,
	}
}

func TestLoadReplacesItemsAndMeta(t *testing.T) {
	controller := New[api.Location](10)

	generation := controller.StartLoad(0)
	if !controller.Loading() {
		t.Fatal("Loading should be true after StartLoad")
	}
	if controller.Empty() {
		t.Fatal("Empty must be false while the first load is pending")
	}

	applied, err := controller.Apply(generation, page([]string{"Ankara", "Izmir"}, 0), nil)
	if err != nil || !applied {
		t.Fatalf("Apply: applied=%v err=%v", applied, err)
	}
	if controller.Loading() {
		t.Error("Loading should clear after Apply")
	}
	if len(controller.Items()) != 2 {
		t.Errorf("items = %d, want 2", len(controller.Items()))
	}
	if controller.Meta() == nil || controller.Meta().TotalPages != 3 {
		t.Errorf("meta = %+v", controller.Meta())
	}
}

func TestGoToPageBounds(t *testing.T) {
	controller := New[api.Location](10)
	generation := controller.StartLoad(0)
	controller.Apply(generation, page([]string{"Ankara"}, 0), nil)

	// Negative pages are a no-op.
	if _, ok := controller.GoToPage(-1); ok {
		t.Error("GoToPage(-1) should be invalid")
	}
	// Pages past the end are a no-op.
	if _, ok := controller.GoToPage(3); ok {
		t.Error("GoToPage(totalPages) should be invalid")
	}
	if controller.Page() != 0 || controller.Loading() {
		t.Error("invalid GoToPage must leave state unchanged")
	}

	// Every valid page is accepted and reflected in Page().
	for p := 0; p < 3; p++ {
		generation, ok := controller.GoToPage(p)
		if !ok {
			t.Fatalf("GoToPage(%d) rejected", p)
		}
		controller.Apply(generation, page([]string{"X"}, p), nil)
		if controller.Page() != p {
			t.Errorf("Page = %d, want %d", controller.Page(), p)
		}
		if len(controller.Items()) > controller.Meta().Size {
			t.Errorf("content length %d exceeds size %d", len(controller.Items()), controller.Meta().Size)
		}
	}
}

func TestFailedLoadKeepsLastKnownGood(t *testing.T) {
	controller := New[api.Location](10)
	generation := controller.StartLoad(0)
	controller.Apply(generation, page([]string{"Ankara", "Izmir"}, 0), nil)

	generation = controller.Refresh()
	applied, err := controller.Apply(generation, api.Page[api.Location]{}, errors.New("boom"))
	if applied {
		t.Error("failed load must not be applied")
	}
	if err == nil {
		t.Error("Apply should surface the load error")
	}
	if len(controller.Items()) != 2 {
		t.Errorf("items after failed refresh = %d, want 2 (unchanged)", len(controller.Items()))
	}
	if controller.Loading() {
		t.Error("Loading should clear after a failed load")
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	controller := New[api.Location](10)

	first := controller.StartLoad(0)
	second := controller.StartLoad(1)

	// The newer load resolves first.
	controller.Apply(second, page([]string{"Newer"}, 1), nil)

	// The older load resolves afterwards; it must be discarded and
	// must not flip the loading flag or the items.
	applied, err := controller.Apply(first, page([]string{"Stale"}, 0), nil)
	if applied || err != nil {
		t.Fatalf("stale Apply: applied=%v err=%v", applied, err)
	}
	if controller.Items()[0].Name != "Newer" {
		t.Errorf("items = %q, stale response overwrote newer page", controller.Items()[0].Name)
	}
	if controller.Page() != 1 {
		t.Errorf("Page = %d, want 1", controller.Page())
	}
}

func TestRefreshReflectsMutation(t *testing.T) {
	controller := New[api.Location](10)
	generation := controller.StartLoad(2)
	last := api.Page[api.Location]{
		Content:       []api.Location{{ID: 21, Name: "Van"}},
		TotalElements: 21, TotalPages: 3, Size: 10, Number: 2,
	}
	controller.Apply(generation, last, nil)

	// Delete of the only item on the last page: the refreshed page is
	// empty and totals shrink by one.
	generation = controller.Refresh()
	afterDelete := api.Page[api.Location]{
		Content:       nil,
		TotalElements: 20, TotalPages: 2, Size: 10, Number: 2,
	}
	controller.Apply(generation, afterDelete, nil)

	if controller.Meta().TotalElements != 20 {
		t.Errorf("TotalElements = %d, want 20", controller.Meta().TotalElements)
	}
	if !controller.Empty() {
		t.Error("page should report empty after deleting its only item")
	}
}

func TestEmptyIsDistinctFromLoading(t *testing.T) {
	controller := New[api.Location](10)

	if controller.Empty() {
		t.Error("Empty before any load must be false")
	}

	generation := controller.StartLoad(0)
	empty := api.Page[api.Location]{TotalElements: 0, TotalPages: 0, Size: 10, Number: 0}
	controller.Apply(generation, empty, nil)

	if !controller.Empty() {
		t.Error("Empty after loading a zero-element page must be true")
	}
	if controller.RangeLabel() != "No results" {
		t.Errorf("RangeLabel = %q", controller.RangeLabel())
	}
}

func TestRangeLabel(t *testing.T) {
	controller := New[api.Location](10)
	generation := controller.StartLoad(2)
	controller.Apply(generation, page([]string{"Van"}, 2), nil)

	if got := controller.RangeLabel(); got != "Showing 21 to 21 of 21 results" {
		t.Errorf("RangeLabel = %q", got)
	}

	if !controller.HasPrevious() {
		t.Error("HasPrevious on page 2 should be true")
	}
	if controller.HasNext() {
		t.Error("HasNext on the last page should be false")
	}
}
