package emojirank

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe is one of the fixed lookback windows the leaderboard accepts.
type Timeframe struct {
	Label  string
	Window time.Duration // zero means unbounded
}

// Timeframes lists the accepted windows, in the order they are offered.
var Timeframes = []Timeframe{
	{Label: "1-week", Window: 7 * 24 * time.Hour},
	{Label: "1-month", Window: 30 * 24 * time.Hour},
	{Label: "3-months", Window: 90 * 24 * time.Hour},
	{Label: "all-time"},
}

// ParseTimeframe matches a label against the accepted set. An empty label
// selects all-time.
func ParseTimeframe(label string) (Timeframe, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Timeframes[len(Timeframes)-1], nil
	}
	for _, tf := range Timeframes {
		if tf.Label == label {
			return tf, nil
		}
	}
	return Timeframe{}, fmt.Errorf("unknown timeframe %q, valid options: %s", label, strings.Join(timeframeLabels(), ", "))
}

func timeframeLabels() []string {
	labels := make([]string, len(Timeframes))
	for i, tf := range Timeframes {
		labels[i] = tf.Label
	}
	return labels
}

// Cutoff returns the oldest timestamp the scan should include. ok is false
// for the unbounded window.
func (tf Timeframe) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	if tf.Window == 0 {
		return time.Time{}, false
	}
	return now.Add(-tf.Window), true
}
