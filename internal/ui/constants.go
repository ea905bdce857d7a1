package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth        = 24
	nameWidth       = 28
	countWidth      = 12
	entryViewport   = 12 // rows shown before the first WindowSizeMsg
	headerLines     = 3  // title, summary, blank
	footerLines     = 2  // blank, key help
	defaultInterval = 120 * time.Millisecond
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

var (
	colorPurple = lipgloss.Color("5")
	colorGray   = lipgloss.Color("8")
	colorRed    = lipgloss.Color("1")
	colorYellow = lipgloss.Color("11")
	colorGreen  = lipgloss.Color("2")
	colorCyan   = lipgloss.Color("6")
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(colorPurple).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	crumbStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	spinnerStyle  = lipgloss.NewStyle().Foreground(colorCyan)
)
