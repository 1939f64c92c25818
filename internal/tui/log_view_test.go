package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/ringline/internal/core/msglog"
)

func testRecords(n int) []msglog.Record {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	records := make([]msglog.Record, n)
	for i := range records {
		records[i] = msglog.Record{
			Topic:      fmt.Sprintf("inbox/%d", i),
			Payload:    fmt.Sprintf("message %d", i),
			ReceivedAt: base.Add(time.Duration(i) * time.Second),
		}
	}
	return records
}

func TestLogView_Navigation(t *testing.T) {
	v := NewLogView()
	v.SetSize(80, 10)
	v.SetRecords(testRecords(5))

	require.NotNil(t, v.SelectedRecord())
	assert.Equal(t, "inbox/0", v.SelectedRecord().Topic)

	v.MoveDown()
	v.MoveDown()
	assert.Equal(t, "inbox/2", v.SelectedRecord().Topic)

	v.MoveUp()
	assert.Equal(t, "inbox/1", v.SelectedRecord().Topic)

	// Cursor stays in bounds
	for range 20 {
		v.MoveDown()
	}
	assert.Equal(t, "inbox/4", v.SelectedRecord().Topic)

	for range 20 {
		v.MoveUp()
	}
	assert.Equal(t, "inbox/0", v.SelectedRecord().Topic)
}

func TestLogView_SelectedRecordEmpty(t *testing.T) {
	v := NewLogView()
	v.SetSize(80, 10)

	assert.Nil(t, v.SelectedRecord())
}

func TestLogView_SubstringFilter(t *testing.T) {
	v := NewLogView()
	v.SetSize(80, 10)
	v.SetRecords([]msglog.Record{
		{Topic: "alerts/fire", Payload: "call 555-1234 now"},
		{Topic: "alerts/flood", Payload: "evacuate"},
		{Topic: "chatter", Payload: "Nothing Urgent"},
	})

	v.StartFilter()
	for _, r := range "urgent" {
		v.AddFilterRune(r)
	}
	v.ConfirmFilter()

	require.NotNil(t, v.SelectedRecord())
	assert.Equal(t, "chatter", v.SelectedRecord().Topic)

	v.CancelFilter()
	assert.Equal(t, "alerts/fire", v.SelectedRecord().Topic)
}

func TestLogView_GlobFilter(t *testing.T) {
	v := NewLogView()
	v.SetSize(80, 10)
	v.SetRecords([]msglog.Record{
		{Topic: "alerts/fire", Payload: "a"},
		{Topic: "alerts/sensors/basement", Payload: "b"},
		{Topic: "chatter", Payload: "c"},
	})

	v.StartFilter()
	for _, r := range "alerts/**" {
		v.AddFilterRune(r)
	}
	v.ConfirmFilter()

	require.NotNil(t, v.SelectedRecord())
	assert.Equal(t, "alerts/fire", v.SelectedRecord().Topic)

	v.MoveDown()
	assert.Equal(t, "alerts/sensors/basement", v.SelectedRecord().Topic)

	// Only the two glob matches are navigable
	v.MoveDown()
	assert.Equal(t, "alerts/sensors/basement", v.SelectedRecord().Topic)
}

func TestLogView_FilterBackspace(t *testing.T) {
	v := NewLogView()
	v.SetSize(80, 10)
	v.SetRecords([]msglog.Record{
		{Topic: "a", Payload: "alpha"},
		{Topic: "b", Payload: "alps"},
	})

	v.StartFilter()
	for _, r := range "alph" {
		v.AddFilterRune(r)
	}
	require.NotNil(t, v.SelectedRecord())
	assert.Equal(t, "a", v.SelectedRecord().Topic)

	v.DeleteFilterRune()
	v.ConfirmFilter()

	assert.Equal(t, "a", v.SelectedRecord().Topic)
	v.MoveDown()
	assert.Equal(t, "b", v.SelectedRecord().Topic)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than max", in: "abc", max: 10, want: "abc"},
		{name: "exactly max", in: "abcde", max: 5, want: "abcde"},
		{name: "longer than max", in: "abcdef", max: 5, want: "abcd…"},
		{name: "max of one", in: "abc", max: 1, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("a\nb\tc"))
	assert.Equal(t, "a b", oneLine("a\r\nb"))
}
