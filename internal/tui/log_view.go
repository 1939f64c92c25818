package tui

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/ringline/internal/core/msglog"
)

// LogView is a compact renderer for the message log.
// It displays records in a single-line format:
// timestamp [topic    ] payload_preview...               phone
type LogView struct {
	records    []msglog.Record
	cursor     int
	width      int
	height     int
	offset     int // scroll offset for viewport
	filtering  bool
	filter     string
	filterBuf  strings.Builder
	filteredAt []int // indices of records matching filter
}

// NewLogView creates a new log view.
func NewLogView() *LogView {
	return &LogView{
		filteredAt: make([]int, 0),
	}
}

// SetRecords sets the records to display (already newest-first).
func (v *LogView) SetRecords(records []msglog.Record) {
	v.records = records
	v.applyFilter()
	if len(v.filteredAt) == 0 {
		v.cursor = 0
	} else if v.cursor >= len(v.filteredAt) {
		v.cursor = len(v.filteredAt) - 1
	}
	v.clampOffset()
}

// SetSize sets the viewport dimensions.
func (v *LogView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampOffset()
}

// visibleLines returns the number of visible record lines.
func (v *LogView) visibleLines() int {
	// Reserve lines for the column header
	reserved := 1
	if v.filtering || v.filter != "" {
		reserved++
	}
	visible := v.height - reserved
	if visible < 1 {
		visible = 1
	}
	return visible
}

// clampOffset ensures the offset keeps the cursor visible.
func (v *LogView) clampOffset() {
	visible := v.visibleLines()
	total := len(v.filteredAt)

	if v.cursor < v.offset {
		v.offset = v.cursor
	} else if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}

	if v.offset < 0 {
		v.offset = 0
	}
	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
}

// MoveUp moves cursor up.
func (v *LogView) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
		v.clampOffset()
	}
}

// MoveDown moves cursor down.
func (v *LogView) MoveDown() {
	if v.cursor < len(v.filteredAt)-1 {
		v.cursor++
		v.clampOffset()
	}
}

// SelectedRecord returns the currently selected record, or nil if none.
func (v *LogView) SelectedRecord() *msglog.Record {
	if len(v.filteredAt) == 0 || v.cursor >= len(v.filteredAt) {
		return nil
	}
	idx := v.filteredAt[v.cursor]
	if idx >= len(v.records) {
		return nil
	}
	return &v.records[idx]
}

// StartFilter begins filter input mode.
func (v *LogView) StartFilter() {
	v.filtering = true
	v.filterBuf.Reset()
}

// CancelFilter cancels filtering and clears the filter.
func (v *LogView) CancelFilter() {
	v.filtering = false
	v.filter = ""
	v.filterBuf.Reset()
	v.applyFilter()
}

// ConfirmFilter confirms the filter and exits filter mode.
func (v *LogView) ConfirmFilter() {
	v.filtering = false
	v.applyFilter()
}

// IsFiltering returns true if filter input is active.
func (v *LogView) IsFiltering() bool {
	return v.filtering
}

// AddFilterRune adds a rune to the filter.
func (v *LogView) AddFilterRune(r rune) {
	v.filterBuf.WriteRune(r)
	v.filter = v.filterBuf.String()
	v.applyFilter()
}

// DeleteFilterRune removes the last rune from the filter.
func (v *LogView) DeleteFilterRune() {
	s := v.filterBuf.String()
	if len(s) > 0 {
		s = s[:len(s)-1]
		v.filterBuf.Reset()
		v.filterBuf.WriteString(s)
		v.filter = s
		v.applyFilter()
	}
}

// applyFilter updates filteredAt based on the current filter.
func (v *LogView) applyFilter() {
	v.filteredAt = v.filteredAt[:0]

	for i := range v.records {
		if v.filter == "" || matchesFilter(&v.records[i], v.filter) {
			v.filteredAt = append(v.filteredAt, i)
		}
	}

	if v.cursor >= len(v.filteredAt) {
		v.cursor = 0
	}
	v.clampOffset()
}

// matchesFilter checks a record against the filter. Patterns containing
// glob metacharacters match the topic path (e.g. "alerts/**"); plain
// text matches topic, payload, or phone as a substring.
func matchesFilter(rec *msglog.Record, filter string) bool {
	if strings.ContainsAny(filter, "*?[{") {
		ok, err := doublestar.Match(filter, rec.Topic)
		return err == nil && ok
	}

	needle := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(rec.Topic), needle) ||
		strings.Contains(strings.ToLower(rec.Payload), needle) ||
		strings.Contains(rec.Phone, needle)
}

// View renders the log view.
func (v *LogView) View() string {
	var b strings.Builder

	// Column widths. Order: Time | Topic | Message | Phone
	timeWidth := 8  // "14:32:01"
	topicWidth := 16
	phoneWidth := 16 // "+18005550199"
	padding := 4     // spaces between columns
	contentWidth := v.width - timeWidth - topicWidth - phoneWidth - padding - 4

	if contentWidth < 20 {
		contentWidth = 20
	}

	// Filter line (only shown when filtering or filter is active)
	if v.filtering {
		filterPrompt := lipgloss.NewStyle().Foreground(colorBlue).Bold(true).Render("Filter: ")
		b.WriteString(" ")
		b.WriteString(filterPrompt)
		b.WriteString(v.filter)
		b.WriteString("▎") // cursor
		b.WriteString("\n")
	} else if v.filter != "" {
		filterShow := lipgloss.NewStyle().Foreground(colorGray).Render(fmt.Sprintf("Filter: %s", v.filter))
		b.WriteString(" ")
		b.WriteString(filterShow)
		b.WriteString("\n")
	}

	// Column headers
	headerStyle := lipgloss.NewStyle().Foreground(colorGray)
	timeHeader := fmt.Sprintf("%-*s", timeWidth, "Time")
	topicHeader := fmt.Sprintf("%-*s", topicWidth, "Topic")
	msgHeader := fmt.Sprintf("%-*s", contentWidth, "Message")
	phoneHeader := fmt.Sprintf("%-*s", phoneWidth, "Phone")
	b.WriteString("  ") // align with content (selection indicator space)
	b.WriteString(headerStyle.Render(timeHeader + " " + topicHeader + " " + msgHeader + " " + phoneHeader))
	b.WriteString("\n")

	linesRendered := 0

	if len(v.filteredAt) == 0 {
		empty := "  No messages"
		if len(v.records) > 0 {
			empty = "  No matching messages"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Render(empty))
		b.WriteString("\n")
		linesRendered++
	}

	visible := v.visibleLines()
	end := v.offset + visible
	if end > len(v.filteredAt) {
		end = len(v.filteredAt)
	}

	for pos := v.offset; pos < end; pos++ {
		rec := v.records[v.filteredAt[pos]]

		timeStr := fmt.Sprintf("%-*s", timeWidth, rec.ReceivedAt.Format("15:04:05"))
		topicStr := fmt.Sprintf("%-*s", topicWidth, truncate(rec.Topic, topicWidth))
		msgStr := fmt.Sprintf("%-*s", contentWidth, truncate(oneLine(rec.Payload), contentWidth))
		phoneStr := fmt.Sprintf("%-*s", phoneWidth, truncate(rec.Phone, phoneWidth))

		var line string
		if pos == v.cursor {
			line = "▎ " + timeStr + " " + topicStr + " " + msgStr + " "
			line = lipgloss.NewStyle().Foreground(colorBlue).Bold(true).Render(line)
		} else {
			line = "  " +
				lipgloss.NewStyle().Foreground(colorGray).Render(timeStr) + " " +
				lipgloss.NewStyle().Foreground(colorBlue).Render(topicStr) + " " +
				lipgloss.NewStyle().Foreground(colorWhite).Render(msgStr) + " "
		}
		if rec.HasPhone() {
			line += phoneStyle.Render(phoneStr)
		} else {
			line += phoneStr
		}

		b.WriteString(line)
		b.WriteString("\n")
		linesRendered++
	}

	// Pad to full height so the layout doesn't shift
	for linesRendered < visible {
		b.WriteString("\n")
		linesRendered++
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// oneLine collapses a payload to a single display line.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
