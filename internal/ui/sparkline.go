package ui

import "slices"

// sparkBlocks spans eight levels from idle to peak throughput.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders recent moves/sec samples as a fixed-width run of
// block characters, scaled against the busiest sample in view. Inputs
// shorter than width are left-padded with idle cells so the line fills
// in from the right as a run warms up.
func Sparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}

	window := make([]float64, width)
	copy(window[max(0, width-len(data)):], data[max(0, len(data)-width):])

	peak := slices.Max(window)
	cells := make([]rune, width)
	for i, v := range window {
		if peak <= 0 || v <= 0 {
			cells[i] = sparkBlocks[0]
			continue
		}
		level := min(int(v/peak*float64(len(sparkBlocks)-1)), len(sparkBlocks)-1)
		cells[i] = sparkBlocks[level]
	}
	return string(cells)
}
