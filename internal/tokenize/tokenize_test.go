package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_SplitsTrailingPunctuation(t *testing.T) {
	tok := New()

	got := tok.Tokenize("This song is fire bro!")

	assert.Equal(t, []string{"This", "song", "is", "fire", "bro", "!"}, got)
}

func TestTokenize_SplitsContractions(t *testing.T) {
	tok := New()

	got := tok.Tokenize("I don't like it")

	assert.Equal(t, []string{"I", "do", "n't", "like", "it"}, got)
}

func TestTokenize_Empty(t *testing.T) {
	tok := New()

	assert.Empty(t, tok.Tokenize(""))
	assert.Empty(t, tok.Tokenize("   \n\t"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fire", "fire"},
		{"sick!", "sick"},
		{`"cool"`, "cool"},
		{"...", ""},
		{"n't", "n't"},
		{"#blessed", "#blessed"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeAll_KeepsPositions(t *testing.T) {
	got := NormalizeAll([]string{"Good", "!", "day"})

	assert.Equal(t, []string{"good", "", "day"}, got)
}
