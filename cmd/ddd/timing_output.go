package main

import (
	"fmt"
	"io"
	"time"

	"ddd/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	for _, stage := range buildpipeline.Stages {
		if d := timings.Duration(stage); d > 0 {
			fmt.Fprintf(out, "%-7s %.1f ms\n", stage, toMillis(d))
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
