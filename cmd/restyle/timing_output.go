package main

import (
	"fmt"
	"io"

	"restyle/internal/driver"
	"restyle/internal/observ"
)

func printTimings(out io.Writer, files int, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	if files > 1 {
		fmt.Fprintf(out, "%d files\n", files)
	}
	fmt.Fprint(out, report.Summary())
}

func mergeTimings(results []driver.Result) observ.Report {
	var total observ.Report
	for _, r := range results {
		if r.Err == nil {
			total = total.Merge(r.Timings)
		}
	}
	return total
}
