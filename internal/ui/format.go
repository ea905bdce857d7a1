package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/tw93/dircount/internal/count"
)

func displayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home || strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

func trimName(name string, width int) string {
	return runewidth.Truncate(name, width, "...")
}

func padName(name string, width int) string {
	return runewidth.FillRight(name, width)
}

func formatFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return humanize.Comma(int64(n)) + " files"
}

func formatPercent(files, total int) string {
	if total <= 0 {
		return "  --  "
	}
	return fmt.Sprintf("%5.1f%%", percentOf(files, total))
}

func percentOf(files, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(files) / float64(total) * 100
}

func percentColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 50:
		return colorRed
	case percent >= 20:
		return colorYellow
	case percent >= 5:
		return colorCyan
	default:
		return colorGreen
	}
}

// distributionBar draws value/max as a barWidth-wide bar colored by the
// share of files it represents.
func distributionBar(value, max int, percent float64) string {
	empty := dimStyle.Render
	if max <= 0 || value <= 0 {
		return empty(strings.Repeat("░", barWidth))
	}

	filled := value * barWidth / max
	if filled > barWidth {
		filled = barWidth
	}
	if filled == 0 {
		filled = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("█", filled-1))
	// Partial last cell.
	remainder := (value * barWidth) % max
	switch {
	case remainder == 0 || remainder > max/2:
		b.WriteString("█")
	case remainder > max/4:
		b.WriteString("▓")
	default:
		b.WriteString("▒")
	}

	bar := lipgloss.NewStyle().Foreground(percentColor(percent)).Render(b.String())
	if filled < barWidth {
		bar += empty(strings.Repeat("░", barWidth-filled))
	}
	return bar
}

func errorText(kind count.ErrorKind) string {
	switch kind {
	case count.ErrPermissionDenied:
		return "no access"
	case count.ErrNotFound:
		return "gone"
	default:
		return "error"
	}
}
