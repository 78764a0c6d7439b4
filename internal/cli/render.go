package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nawal-0/BusParser/internal/board"
)

// RenderRows writes departure rows as an aligned text table.
func RenderRows(out io.Writer, rows []board.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No departures found in the next 10 minutes.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Route\tDestination\tScheduled\tLive\tPosition")
	for _, r := range rows {
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n",
			r.RouteShortName, r.RouteLongName, r.Headsign,
			r.ArrivalTime, r.LiveArrivalTime, r.LivePosition)
	}
	_ = w.Flush()
}
