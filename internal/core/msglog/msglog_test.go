package msglog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(i int) Record {
	return Record{
		Topic:      "calls/inbox",
		Payload:    fmt.Sprintf("message %d", i),
		ReceivedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Second),
	}
}

func TestLog_AppendNewestFirst(t *testing.T) {
	l := New(10)

	l.Append(record(1))
	l.Append(record(2))
	l.Append(record(3))

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "message 3", all[0].Payload)
	assert.Equal(t, "message 2", all[1].Payload)
	assert.Equal(t, "message 1", all[2].Payload)
}

func TestLog_EvictsOldestAtCapacity(t *testing.T) {
	l := New(DefaultCapacity)

	for i := 1; i <= DefaultCapacity+1; i++ {
		l.Append(record(i))
	}

	all := l.All()
	require.Len(t, all, DefaultCapacity)
	// Newest survives at the front, the very first record is gone.
	assert.Equal(t, "message 51", all[0].Payload)
	assert.Equal(t, "message 2", all[len(all)-1].Payload)

	// Order preserved throughout.
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i].ReceivedAt.Before(all[i-1].ReceivedAt))
	}
}

func TestLog_DefaultCapacityFallback(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Capacity())
	assert.Equal(t, DefaultCapacity, New(-5).Capacity())
	assert.Equal(t, 7, New(7).Capacity())
}

func TestLog_AllReturnsCopy(t *testing.T) {
	l := New(5)
	l.Append(record(1))

	all := l.All()
	all[0].Payload = "mutated"

	assert.Equal(t, "message 1", l.All()[0].Payload)
}

func TestRecord_HasPhone(t *testing.T) {
	assert.False(t, Record{}.HasPhone())
	assert.True(t, Record{Phone: "5551234567"}.HasPhone())
}
