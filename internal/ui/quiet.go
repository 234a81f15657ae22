package ui

import "github.com/bamsammich/mkt/internal/stats"

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	stats *stats.Collector
}

func (p *quietPresenter) Run(events <-chan Event) error {
	for range events {
		// Totals and counters are written to the collector by the pipeline;
		// presenters only read from it.
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
