package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// probeDuration reads the container duration in seconds, rounded to two
// decimals.
func (p *implProcessor) probeDuration(ctx context.Context, path string) (float64, error) {
	out, err := p.executor.Execute(ctx, p.ffmpeg.ProbeBinaryPath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("decode ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	d, err := decimal.NewFromString(probe.Format.Duration)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative duration %s", d)
	}

	seconds, _ := d.Round(2).Float64()
	return seconds, nil
}

// durationOf is probeDuration with failures reduced to a warning.
func (p *implProcessor) durationOf(ctx context.Context, path string) *float64 {
	seconds, err := p.probeDuration(ctx, path)
	if err != nil {
		p.logger.Warn(ctx, "Could not read duration of %s: %v", path, err)
		return nil
	}
	return &seconds
}
