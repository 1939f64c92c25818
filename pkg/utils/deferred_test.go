package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter(t *testing.T) {
	var w DeferredWriter

	_, err := w.Write([]byte("first "))
	require.NoError(t, err)
	_, err = w.Write([]byte("second"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, w.Flush(&out))
	assert.Equal(t, "first second", out.String())

	// Buffer is reset after flush
	out.Reset()
	require.NoError(t, w.Flush(&out))
	assert.Empty(t, out.String())
}
