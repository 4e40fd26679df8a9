package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQRPayload(t *testing.T) {
	payload := BuildQRPayload(42, 7, "Ada Lovelace", "ada@example.edu")
	assert.Equal(t, "REG:42|EVT:7|NAME:Ada Lovelace|EMAIL:ada@example.edu", payload)
}

func TestExtractRegistrationID(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		wantID uint
		wantOK bool
	}{
		{"full payload", "REG:42|EVT:7|NAME:Ada|EMAIL:ada@example.edu", 42, true},
		{"payload with large id", "REG:123456|EVT:1|NAME:X|EMAIL:x@y.z", 123456, true},
		{"bare numeric fallback", "17", 17, true},
		{"numeric with whitespace", "  17  ", 17, true},
		{"prefix anywhere in string", "scanned REG:9 ok", 9, true},
		{"empty string", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"garbage", "hello world", 0, false},
		{"mixed digits and letters", "12ab", 0, false},
		{"reg prefix without digits", "REG:|EVT:1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractRegistrationID(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestSanitizeEmailForFilename(t *testing.T) {
	assert.Equal(t, "ada_example.edu", sanitizeEmailForFilename("ada@example.edu"))
	assert.Equal(t, "a_b_c.d-e", sanitizeEmailForFilename("a+b@c.d-e"))
}
