package phone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "formatted US number",
			text:  "call me at (555) 123-4567 please",
			want:  "5551234567",
			found: true,
		},
		{
			name:  "international with plus and spaces",
			text:  "+1 800 555 0199",
			want:  "+18005550199",
			found: true,
		},
		{
			name:  "no digits",
			text:  "no digits here",
			found: false,
		},
		{
			name:  "empty string",
			text:  "",
			found: false,
		},
		{
			name:  "hyphenated number mid-sentence",
			text:  "emergency line is 555-867-5309, day or night",
			want:  "5558675309",
			found: true,
		},
		{
			name:  "bare seven digit run",
			text:  "ref 8675309 in the subject",
			want:  "8675309",
			found: true,
		},
		{
			name:  "too short",
			text:  "room#123-45.",
			found: false,
		},
		{
			name:  "first of multiple candidates wins",
			text:  "old: 555-111-2222 new: 555-333-4444",
			want:  "5551112222",
			found: true,
		},
		{
			name:  "plus only counts when leading",
			text:  "sum 12+34 is not a number but 5551234567 is",
			want:  "5551234567",
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Extract(tt.text)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestExtract_CleanedOutputHasNoFormatting(t *testing.T) {
	inputs := []string{
		"(555) 123-4567",
		"+44 20 7946 0958",
		"555 - 123 - 4567",
		"tel (800)5550199 now",
	}

	for _, in := range inputs {
		got, found := Extract(in)
		assert.True(t, found, "input %q", in)
		assert.NotContainsf(t, got, " ", "input %q", in)
		assert.NotContainsf(t, got, "-", "input %q", in)
		assert.NotContainsf(t, got, "(", "input %q", in)
		assert.NotContainsf(t, got, ")", "input %q", in)
	}
}

func TestExtract_SpaceRunIsNotANumber(t *testing.T) {
	_, found := Extract("a" + strings.Repeat(" ", 12) + "b")
	assert.False(t, found)
}
