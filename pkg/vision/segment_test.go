package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "sentences keep punctuation",
			in:   "I saw a lion. It roared! Was it real?",
			want: []string{"I saw a lion.", "It roared!", "Was it real?"},
		},
		{
			name: "marker splits and is dropped",
			in:   "I saw a lion. In another vision I saw a dove.",
			want: []string{"I saw a lion.", "I saw a dove."},
		},
		{
			name: "marker without punctuation",
			in:   "a cow chased me IN ANOTHER VISION a screen glowed",
			want: []string{"a cow chased me", "a screen glowed"},
		},
		{
			name: "decimal point is not a boundary",
			in:   "It was 3.5 meters tall.",
			want: []string{"It was 3.5 meters tall."},
		},
		{
			name: "newlines and japanese punctuation",
			in:   "牛が追いかけた。テレビを見た\nthen light",
			want: []string{"牛が追いかけた。", "テレビを見た", "then light"},
		},
		{
			name: "empty segments dropped",
			in:   "  ...  In another vision  ",
			want: []string{"..."},
		},
		{
			name: "blank",
			in:   "   ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}
