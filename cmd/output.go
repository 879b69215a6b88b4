package cmd

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/AlesInsomnes/Elementary-MC-model/mc/record"
)

// The record stream is JSON lines: a header, one line per checkpoint sample
// in step order, one line per dissolution event, and a final summary. Every
// line carries a "type" tag so analysis tooling can consume the stream
// without coordination with the engine.

type headerLine struct {
	Type       string            `json:"type"`
	RunID      string            `json:"run_id"`
	Seed       int64             `json:"seed"`
	StopReason record.StopReason `json:"stop_reason"`
	FinalStep  int64             `json:"final_step"`
}

type sampleLine struct {
	Type string `json:"type"`
	record.Sample
}

type dissolutionLine struct {
	Type string `json:"type"`
	record.Dissolution
}

type summaryLine struct {
	Type string `json:"type"`
	record.Summary
}

type aggregateLine struct {
	Type string `json:"type"`
	record.Aggregate
}

// writeSeries emits one run's record sequence followed by its summary.
func writeSeries(w io.Writer, series *record.Series, summary record.Summary) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	if err := enc.Encode(headerLine{
		Type:       "header",
		RunID:      series.RunID,
		Seed:       series.Seed,
		StopReason: series.StopReason,
		FinalStep:  series.FinalStep,
	}); err != nil {
		return err
	}
	for _, s := range series.Samples {
		if err := enc.Encode(sampleLine{Type: "sample", Sample: s}); err != nil {
			return err
		}
	}
	for _, d := range series.Dissolutions {
		if err := enc.Encode(dissolutionLine{Type: "dissolution", Dissolution: d}); err != nil {
			return err
		}
	}
	if err := enc.Encode(summaryLine{Type: "summary", Summary: summary}); err != nil {
		return err
	}
	return bw.Flush()
}

// writeSummaries emits per-realization summaries and their aggregate.
func writeSummaries(w io.Writer, summaries []record.Summary, agg record.Aggregate) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	for _, s := range summaries {
		if err := enc.Encode(summaryLine{Type: "summary", Summary: s}); err != nil {
			return err
		}
	}
	if err := enc.Encode(aggregateLine{Type: "aggregate", Aggregate: agg}); err != nil {
		return err
	}
	return bw.Flush()
}
