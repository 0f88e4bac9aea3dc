package isbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated isbn10", "0-19-853453-1", "0198534531"},
		{"lowercase check digit", "0-8044-2957-x", "080442957X"},
		{"isbn13 with spaces", "978 0 13 110362 7", "9780131103627"},
		{"letters dropped", "ISBN: 978-0131103627", "9780131103627"},
		{"empty", "", ""},
		{"unicode digits dropped", "١٢٣", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_CharsetAndIdempotent(t *testing.T) {
	inputs := []string{
		"", "x", "xX-12", "abc", "978-3-16-148410-0", "  0 19 85 x ",
		"日本語123x", "!!@@##", "ISBN-10: 0-306-40615-2",
	}
	for _, in := range inputs {
		out := Normalize(in)
		for _, r := range out {
			assert.True(t, (r >= '0' && r <= '9') || r == 'X', "unexpected %q in %q", r, out)
		}
		assert.Equal(t, out, Normalize(out), "not idempotent for %q", in)
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "0198534531", Canonical("0-19-853453-1"))
	assert.Equal(t, "9780131103627", Canonical("978-0-13-110362-7"))
	assert.Equal(t, "", Canonical("12345"))
	assert.Equal(t, "", Canonical("123456789012"))
	assert.Equal(t, "", Canonical(""))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("080442957X"))
	assert.True(t, Valid("9780131103627"))
	assert.False(t, Valid("08044"))
	assert.False(t, Valid(""))
}
