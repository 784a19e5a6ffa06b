package text

import (
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "Hello world. Bye now.",
			want: []string{"Hello world", "Bye now."},
		},
		{
			name: "no boundary returns whole text",
			text: "Hello world",
			want: []string{"Hello world"},
		},
		{
			name: "period without whitespace does not split",
			text: "Giá 1.500 đồng. Hết.",
			want: []string{"Giá 1.500 đồng", "Hết."},
		},
		{
			name: "collapses double spaces inside sentences",
			text: "Ông Chúc  đang làm việc. Bà Lan.",
			want: []string{"Ông Chúc đang làm việc", "Bà Lan."},
		},
		{
			name: "newline after period is a boundary",
			text: "Một.\nHai.",
			want: []string{"Một", "Hai."},
		},
		{
			name: "splits after the last period of an ellipsis",
			text: "Chờ... Xong.",
			want: []string{"Chờ..", "Xong."},
		},
		{
			name: "abbreviation is not consulted",
			text: "Mr. Lee đến.",
			want: []string{"Mr", "Lee đến."},
		},
		{
			name: "trailing boundary leaves no empty sentence",
			text: "Một. ",
			want: []string{"Một"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace-only input",
			text: " \t\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitSentences(%q) returned %d sentences %q, want %d %q",
					tt.text, len(got), got, len(tt.want), tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a b", "a b"},
		{"a  b", "a b"},
		{"a \t\n b", "a b"},
		{"a\nb", "a\nb"},
		{"  a", " a"},
		{"Hà  Nội", "Hà Nội"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CollapseSpaces(tt.input); got != tt.want {
			t.Errorf("CollapseSpaces(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFields(t *testing.T) {
	got := Fields("  Ông\tNguyễn \n Khắc  ")
	want := []string{"Ông", "Nguyễn", "Khắc"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Fields = %q, want %q", got, want)
	}

	if got := Fields(" \t "); len(got) != 0 {
		t.Errorf("Fields(whitespace) = %q, want empty", got)
	}
}

func TestSplitSentences_AllSentencesNonEmpty(t *testing.T) {
	text := "Một. Hai.  Ba.\n\nBốn. . Năm"

	for i, s := range SplitSentences(text) {
		if strings.TrimSpace(s) == "" {
			t.Errorf("sentence[%d] is empty or whitespace-only", i)
		}
	}
}
