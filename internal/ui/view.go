package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tw93/dircount/internal/count"
	"github.com/tw93/dircount/internal/nav"
)

const (
	titleText = "Analyze Files"
	crumbSep  = " / "
)

// crumb is one clickable breadcrumb segment on the title line.
type crumb struct {
	label  string
	depth  int
	x0, x1 int
}

// layoutCrumbs positions the breadcrumb segments exactly as View prints them.
func layoutCrumbs(snap nav.Snapshot) []crumb {
	crumbs := make([]crumb, 0, len(snap.Breadcrumbs))
	x := runewidth.StringWidth(titleText) + 2
	for i, p := range snap.Breadcrumbs {
		label := filepath.Base(p)
		if i == 0 {
			label = displayPath(p)
		} else {
			x += runewidth.StringWidth(crumbSep)
		}
		w := runewidth.StringWidth(label)
		crumbs = append(crumbs, crumb{label: label, depth: i, x0: x, x1: x + w})
		x += w
	}
	return crumbs
}

func (m Model) View() string {
	var b strings.Builder
	snap := m.snap

	// Title and breadcrumbs.
	b.WriteString(titleStyle.Render(titleText))
	b.WriteString("  ")
	for i, c := range layoutCrumbs(snap) {
		if i > 0 {
			b.WriteString(dimStyle.Render(crumbSep))
		}
		if c.depth == snap.Depth() {
			b.WriteString(selectedStyle.Render(c.label))
		} else {
			b.WriteString(crumbStyle.Render(c.label))
		}
	}
	b.WriteString("\n")

	b.WriteString(m.summary())
	b.WriteString("\n\n")

	rows := m.rows()
	switch {
	case snap.Err != count.ErrNone:
		b.WriteString(errorStyle.Render("  Cannot read directory: " + snap.Err.String()))
		b.WriteString("\n")
		rows--
	case len(snap.Children) == 0:
		b.WriteString(dimStyle.Render("  No subdirectories"))
		b.WriteString("\n")
		rows--
	}

	maxFiles := 1
	for _, c := range snap.Children {
		if c.Counted() && c.Result.Files > maxFiles {
			maxFiles = c.Result.Files
		}
	}

	end := m.offset + rows
	if end > len(snap.Children) {
		end = len(snap.Children)
	}
	for idx := m.offset; idx < end; idx++ {
		b.WriteString(m.row(idx, snap.Children[idx], maxFiles))
		b.WriteString("\n")
	}
	for i := end - m.offset; i < rows; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) summary() string {
	snap := m.snap
	var parts []string
	switch snap.DirStatus {
	case count.Done:
		parts = append(parts, fmt.Sprintf("Here: %s, %d dirs", formatFiles(snap.DirResult.Files), snap.DirResult.Subdirs))
	case count.Failed:
		parts = append(parts, errorStyle.Render("Here: "+errorText(snap.DirResult.Err)))
	default:
		parts = append(parts, "Here: "+m.spinner.View()+" counting")
	}
	parts = append(parts, "Below: "+formatFiles(snap.TotalFiles))
	if snap.Counting > 0 {
		parts = append(parts, fmt.Sprintf("%s %d counting", m.spinner.View(), snap.Counting))
	}
	parts = append(parts, "Sort: "+snap.Sort.String())
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return dimStyle.Render("  ") + strings.Join(parts, dimStyle.Render("  |  "))
}

func (m Model) row(idx int, c nav.ChildView, maxFiles int) string {
	prefix := "    "
	name := padName(trimName(c.Name, nameWidth), nameWidth)
	nameSegment := "📁 " + name
	if idx == m.snap.Selected {
		prefix = " " + cursorStyle.Render("▶") + "  "
		nameSegment = selectedStyle.Render(nameSegment)
	}

	var bar, percent, countText string
	switch c.Status {
	case count.Done:
		p := percentOf(c.Result.Files, m.snap.TotalFiles)
		bar = distributionBar(c.Result.Files, maxFiles, p)
		percent = formatPercent(c.Result.Files, m.snap.TotalFiles)
		countText = fmt.Sprintf("%*s", countWidth, formatFiles(c.Result.Files))
	case count.Failed:
		bar = distributionBar(0, maxFiles, 0)
		percent = formatPercent(0, 0)
		countText = errorStyle.Render(fmt.Sprintf("%*s", countWidth, errorText(c.Result.Err)))
	default:
		bar = distributionBar(0, maxFiles, 0)
		percent = formatPercent(0, 0)
		countText = fmt.Sprintf("%*s", countWidth-2, "counting") + " " + m.spinner.View()
	}

	return fmt.Sprintf("%s%2d. %s %s  |  %s %s", prefix, idx+1, bar, percent, nameSegment, countText)
}

func (m Model) footer() string {
	var parts []string
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render("  " + strings.Join(parts, "  |  "))
}
