package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fridgely/fridgely/internal/ingest"
	"github.com/fridgely/fridgely/internal/models"
)

// ingestMode reports whether opts ask for a scan or a confirmation.
func (o options) ingestMode() bool {
	return len(o.scan) > 0 || o.scanLabels != "" || len(o.confirm) > 0
}

// applyIngest runs the -scan, -scan-labels or -confirm mode against a single
// fridge and prints the resulting inventory to w.
func applyIngest(ctx context.Context, adapter *ingest.Adapter, opts options, w io.Writer) error {
	if len(opts.fridges) > 1 {
		return fmt.Errorf("scan and confirm write to a single fridge, got %d ids", len(opts.fridges))
	}

	var fridgeID string
	if len(opts.fridges) == 1 {
		fridgeID = opts.fridges[0]
	}

	var (
		inv *models.Inventory
		err error
	)
	switch {
	case opts.scanLabels != "":
		inv, err = adapter.Scan(ctx, ingest.LabelFileDetector{}, fridgeID, opts.scanLabels)
	case len(opts.scan) > 0:
		inv, err = adapter.Scan(ctx, ingest.StaticDetector(opts.scan), fridgeID, "command line")
	default:
		inv, err = adapter.ConfirmWithoutClobbering(ctx, fridgeID, opts.confirm)
	}
	if err != nil {
		return fmt.Errorf("updating fridge: %w", err)
	}

	slog.Info("fridge updated", "fridge", inv.FridgeID, "items", len(inv.Items))
	return printJSON(w, inventoryOutput(inv))
}
