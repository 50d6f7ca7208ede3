package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Café Brecht", "cafe brecht"},
		{"Vondelpark3", "vondelpark3"},
		{"Señor Müller", "senor muller"},
		{"ØLBAREN", "ølbaren"}, // ø carries no combining mark; kept as-is
		{"", ""},
		{"  Plain Name  ", "  plain name  "},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ToASCII(tt.in), "input %q", tt.in)
	}
}
