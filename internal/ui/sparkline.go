package ui

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the trailing width samples of data as block runes,
// left-padded with the lowest block when data is short. Heights are
// scaled to the window's peak value.
func Sparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}

	window := make([]float64, width)
	copy(window[max(0, width-len(data)):], data[max(0, len(data)-width):])

	var peak float64
	for _, v := range window {
		peak = max(peak, v)
	}

	out := make([]rune, width)
	for i, v := range window {
		out[i] = sparkLevels[0]
		if peak > 0 && v > 0 {
			lvl := int(v / peak * float64(len(sparkLevels)-1))
			out[i] = sparkLevels[min(lvl, len(sparkLevels)-1)]
		}
	}
	return string(out)
}
