package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRate(t *testing.T) {
	tests := []struct {
		bps  float64
		want string
	}{
		{0, "0 B/s"},
		{-5, "0 B/s"},
		{512, "512 B/s"},
		{1024, "1.00 KB/s"},
		{15 * 1024, "15.0 KB/s"},
		{100 * 1024, "100 KB/s"},
		{1.5 * 1024 * 1024, "1.50 MB/s"},
		{2.5 * 1024 * 1024 * 1024, "2.50 GB/s"},
		{3 * 1024 * 1024 * 1024 * 1024, "3.00 TB/s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRate(tt.bps))
		})
	}
}

func TestFormatETA(t *testing.T) {
	assert.Equal(t, "--", FormatETA(0))
	assert.Equal(t, "--", FormatETA(-time.Second))
	assert.Equal(t, "30s", FormatETA(30*time.Second))
	assert.Equal(t, "1m 30s", FormatETA(90*time.Second))
	assert.Equal(t, "1h 01m 01s", FormatETA(3661*time.Second))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(0))
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "3m 17s", FormatDuration(3*time.Minute+17*time.Second))
	assert.Equal(t, "2h 00m 09s", FormatDuration(2*time.Hour+9*time.Second))
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{14302, "14,302"},
		{1000000, "1,000,000"},
		{-1000, "-1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCount(tt.n))
		})
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "▪▪▪▪▪□□□□□", ProgressBar(0.5, 10))
	assert.Equal(t, "□□□□□□□□□□", ProgressBar(0, 10))
	assert.Equal(t, "▪▪▪▪▪▪▪▪▪▪", ProgressBar(1.0, 10))

	// Clamping and degenerate width.
	assert.Equal(t, "▪▪▪▪▪▪▪▪▪▪", ProgressBar(1.5, 10))
	assert.Equal(t, "□□□□□□□□□□", ProgressBar(-0.2, 10))
	assert.Equal(t, "", ProgressBar(0.5, 0))
}
