package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/ringline/internal/core/msglog"
)

// Preview modal layout constants.
const (
	previewModalMaxWidth  = 100 // maximum modal width in columns
	previewModalMaxHeight = 30  // maximum modal height in rows
	previewModalMargin    = 4   // margin from screen edges
	previewModalChrome    = 8   // rows for title, metadata, help, and spacing
	previewModalPadding   = 4   // padding inside content area
	glamourGutter         = 2   // glamour adds gutter space
)

// PreviewModal displays a single log record with markdown rendering for
// the payload.
type PreviewModal struct {
	record   msglog.Record
	viewport viewport.Model
}

// NewPreviewModal creates a preview modal for the given record.
func NewPreviewModal(rec msglog.Record, width, height int) PreviewModal {
	modalWidth := min(width-previewModalMargin, previewModalMaxWidth)
	modalHeight := min(height-previewModalMargin, previewModalMaxHeight)
	contentHeight := modalHeight - previewModalChrome

	vp := viewport.New(modalWidth-previewModalPadding, contentHeight)
	vp.Style = lipgloss.NewStyle()

	m := PreviewModal{
		record:   rec,
		viewport: vp,
	}

	m.renderContent(modalWidth - previewModalPadding - glamourGutter)

	return m
}

// renderContent renders the record payload as markdown.
func (m *PreviewModal) renderContent(width int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.viewport.SetContent(m.record.Payload)
		return
	}

	rendered, err := renderer.Render(m.record.Payload)
	if err != nil {
		m.viewport.SetContent(m.record.Payload)
		return
	}

	// Glamour adds decorative rules and margins around the content -
	// strip them so the modal stays tight.
	content := strings.TrimSpace(rendered)
	content = stripLeadingDecorative(content)
	content = stripTrailingDecorative(content)
	m.viewport.SetContent(content)
}

// UpdateViewport forwards a message to the viewport (for scrolling).
func (m *PreviewModal) UpdateViewport(msg any) {
	m.viewport, _ = m.viewport.Update(msg)
}

// ScrollUp scrolls the viewport up one line.
func (m *PreviewModal) ScrollUp() {
	m.viewport.LineUp(1)
}

// ScrollDown scrolls the viewport down one line.
func (m *PreviewModal) ScrollDown() {
	m.viewport.LineDown(1)
}

// Overlay renders the preview modal centered over the background.
func (m PreviewModal) Overlay(width, height int) string {
	modalWidth := min(width-previewModalMargin, previewModalMaxWidth)
	modalHeight := min(height-previewModalMargin, previewModalMaxHeight)

	topicStr := previewTopicStyle.Render(fmt.Sprintf("[%s]", m.record.Topic))
	timeStr := previewTimeStyle.Render(m.record.ReceivedAt.Format("2006-01-02 15:04:05"))
	metadata := fmt.Sprintf("%s %s %s", topicStr, iconDot, timeStr)

	if m.record.HasPhone() {
		phoneStr := phoneStyle.Render(fmt.Sprintf("%s %s", iconRing, m.record.Phone))
		metadata = fmt.Sprintf("%s\n%s", metadata, phoneStr)
	}

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = previewScrollStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	modalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		modalTitleStyle.Render("Message Preview"+scrollInfo),
		"",
		metadata,
		previewDividerStyle.Width(modalWidth-previewModalPadding).Render(strings.Repeat("─", modalWidth-previewModalPadding)),
		m.viewport.View(),
		modalHelpStyle.Render("[↑/↓/j/k] scroll  [enter/esc] close"),
	)

	modal := modalStyle.
		Width(modalWidth).
		Height(modalHeight).
		Render(modalContent)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// Preview modal specific styles.
var (
	previewTopicStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	previewTimeStyle = lipgloss.NewStyle().
				Foreground(colorGray)

	previewDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3b4261"))

	previewScrollStyle = lipgloss.NewStyle().
				Foreground(colorGray)
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// isDecorativeLine checks if a line contains only decorative characters
// (horizontal rules, spaces) after stripping ANSI codes.
func isDecorativeLine(line string) bool {
	stripped := ansiPattern.ReplaceAllString(line, "")
	stripped = strings.TrimSpace(stripped)
	if stripped == "" {
		return true
	}
	for _, r := range stripped {
		if r != '─' && r != '━' && r != '-' && r != '=' {
			return false
		}
	}
	return true
}

// stripLeadingDecorative removes leading decorative lines from content.
func stripLeadingDecorative(content string) string {
	lines := strings.Split(content, "\n")
	start := 0
	for start < len(lines) && isDecorativeLine(lines[start]) {
		start++
	}
	if start > 0 {
		return strings.Join(lines[start:], "\n")
	}
	return content
}

// stripTrailingDecorative removes trailing decorative lines from content.
func stripTrailingDecorative(content string) string {
	lines := strings.Split(content, "\n")
	end := len(lines)
	for end > 0 && isDecorativeLine(lines[end-1]) {
		end--
	}
	if end < len(lines) {
		return strings.Join(lines[:end], "\n")
	}
	return content
}
