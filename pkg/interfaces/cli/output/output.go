// Package output renders matching and dashboard results in the formats
// the CLI supports.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/reliefgrid/coordinator/pkg/application/services/dashboard"
	"github.com/reliefgrid/coordinator/pkg/application/services/matching"
)

// Format is a supported rendering format.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// Matching renders a matching.Result to w in the given format.
func Matching(w io.Writer, result *matching.Result, format Format) error {
	switch format {
	case JSON:
		return writeJSON(w, result)
	default:
		return writeMatchingText(w, result)
	}
}

// Dashboard renders a dashboard.Snapshot to w in the given format.
func Dashboard(w io.Writer, snap dashboard.Snapshot, format Format) error {
	switch format {
	case JSON:
		return writeJSON(w, snap)
	default:
		return writeDashboardText(w, snap)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeMatchingText(w io.Writer, result *matching.Result) error {
	if !result.Success {
		_, err := fmt.Fprintf(w, "matching pass aborted: %v\n", result.Err)
		return err
	}

	fmt.Fprintf(w, "Matching pass complete\n")
	fmt.Fprintf(w, "%s\n", result.Message)
	fmt.Fprintf(w, "  allocations:          %d\n", len(result.Allocations))
	fmt.Fprintf(w, "  fully fulfilled:      %d\n", result.FullyFulfilledCount())
	fmt.Fprintf(w, "  partially fulfilled:  %d\n", result.PartiallyFulfilledCount())
	fmt.Fprintf(w, "  total quantity moved: %d\n", result.TotalAllocatedQuantity())

	for _, a := range result.Allocations {
		fmt.Fprintf(w, "\n  need %s -> %.0f%% fulfilled\n", a.NeedID, a.FulfillmentPercent)
		for _, s := range a.Supplies {
			exhausted := ""
			if s.Exhausted {
				exhausted = " (exhausted)"
			}
			fmt.Fprintf(w, "    supply %s: %d units, score %.3f%s\n", s.SupplyID, s.Quantity, s.Score, exhausted)
		}
	}
	return nil
}

func writeDashboardText(w io.Writer, snap dashboard.Snapshot) error {
	fmt.Fprintf(w, "Relief dashboard as of %s\n\n", snap.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "Needs:     %d total, %d fulfilled, %d partial, %d unfulfilled (%.1f%% met)\n",
		snap.Needs.Total, snap.Needs.Fulfilled, snap.Needs.PartiallyFulfilled, snap.Needs.Unfulfilled, snap.Needs.PercentMet)
	fmt.Fprintf(w, "Supplies:  %d total, %d depleted, %d low stock\n",
		snap.Supplies.Total, snap.Supplies.Depleted, snap.Supplies.LowStock)
	fmt.Fprintf(w, "Shipments: %d active (%d pending, %d in transit), %d delivered today\n\n",
		snap.Shipments.ActiveTotal, snap.Shipments.Pending, snap.Shipments.InTransit, snap.Shipments.DeliveredToday)

	if len(snap.PanicNeedIDs) > 0 {
		fmt.Fprintf(w, "PANIC: %d need(s) in acute crisis\n", len(snap.PanicNeedIDs))
		for _, id := range snap.PanicNeedIDs {
			fmt.Fprintf(w, "  - %s\n", id)
		}
		fmt.Fprintln(w)
	}

	if len(snap.CriticalMissing) > 0 {
		fmt.Fprintf(w, "Critical missing (most urgent first):\n")
		for _, item := range snap.CriticalMissing {
			fmt.Fprintf(w, "  - %s [%s] %s, score %.2f, waited %.1fh\n",
				item.NeedID, item.Category, item.Title, item.Score, item.HoursWaited)
		}
		fmt.Fprintln(w)
	}

	if len(snap.ByCategory) > 0 {
		fmt.Fprintf(w, "By category:\n")
		for category, stat := range snap.ByCategory {
			fmt.Fprintf(w, "  %-12s %.1f%% fulfilled, %d allocatable\n", category, stat.FulfillmentPercent, stat.Allocatable)
		}
	}
	return nil
}
