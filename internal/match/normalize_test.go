package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "repack annotation with qualifier",
			input: "Cyberpunk 2077 (FitGirl Repack, Selective Download)",
			want:  "cyberpunk 2077",
		},
		{
			name:  "edition suffix after colon",
			input: "Grand Theft Auto V: Premium Edition",
			want:  "grand theft auto v",
		},
		{
			name:  "hyphen preserved",
			input: "Spider-Man",
			want:  "spider-man",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "punctuation only",
			input: "!@#$%",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   \t  ",
			want:  "",
		},
		{
			name:  "bracketed repack marker",
			input: "Sekiro: Shadows Die Twice [Repack]",
			want:  "sekiro shadows die twice",
		},
		{
			name:  "dodi repack group",
			input: "Hogwarts Legacy [DODI Repack]",
			want:  "hogwarts legacy",
		},
		{
			name:  "trailing repack suffix",
			input: "Elden Ring - Repack",
			want:  "elden ring",
		},
		{
			name:  "game of the year edition",
			input: "The Witcher 3: Wild Hunt - Game of the Year Edition",
			want:  "the witcher 3 wild hunt",
		},
		{
			name:  "goty shorthand",
			input: "Batman: Arkham City GOTY",
			want:  "batman arkham city",
		},
		{
			name:  "remake qualifier",
			input: "Resident Evil 2 Remake",
			want:  "resident evil 2",
		},
		{
			name:  "remastered qualifier",
			input: "Dark Souls: Remastered",
			want:  "dark souls",
		},
		{
			name:  "deluxe edition mid-string",
			input: "ELDEN RING Deluxe Edition Bundle",
			want:  "elden ring bundle",
		},
		{
			name:  "apostrophe preserved",
			input: "Assassin's Creed Odyssey",
			want:  "assassin's creed odyssey",
		},
		{
			name:  "trademark and colon stripped",
			input: "NieR:Automata™",
			want:  "nier automata",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Hades  ",
			want:  "hades",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Cyberpunk 2077 (FitGirl Repack, Selective Download)",
		"Grand Theft Auto V: Premium Edition",
		"Spider-Man",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalizing %q twice must be stable", input)
	}
}
