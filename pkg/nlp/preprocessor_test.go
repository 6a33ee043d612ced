package nlp_test

import (
	"testing"

	"github.com/MrWong99/phonomatch/pkg/nlp"
)

func TestEnPreProcessor(t *testing.T) {
	t.Parallel()

	p := nlp.NewEnPreProcessor()

	tests := []struct {
		name  string
		in    string
		want  string
	}{
		// í as i plus combining acute, ffi as a ligature.
		{"nfkc and case fold", "Híﬃ", "híffi"},
		{"digits kept", "123 King  St", "123 king st"},
		{"digits kept 2", "2 Wildwood  Place", "2 wildwood place"},
		{"punctuation cleared", "!omg! ch!ll ?how?", "omg ch ll how"},
		{"apostrophe and case", "Justin's haus", "justin s haus"},
		{"plain", "call mom", "call mom"},
		{"trailing punctuation", "call MoM!", "call mom"},
		{"heavy punctuation", "*(*&call,   MoM! )_+", "call mom"},
		{"separator punctuation", ":call/mom", "call mom"},
		{"stop words removed", "call the mom", "call mom"},
		{"stop word at start", "the big lebowski", "big lebowski"},
		{"santa is a stop word", "santa monica", "monica"},
		{"whitespace collapsed", "Call  mom .", "call mom"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.PreProcess(tt.in); got != tt.want {
				t.Errorf("PreProcess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnPlacesPreProcessor(t *testing.T) {
	t.Parallel()

	p := nlp.NewEnPlacesPreProcessor()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"street abbreviation", "123 King St.", "123 king street"},
		{"avenue short", "5th Av", "5th avenue"},
		{"avenue long", "5th Ave.", "5th avenue"},
		{"saint at start", "St. Paul", "saint paul"},
		{"cardinal directions", "12 N Main St", "12 north main street"},
		{"compound direction", "NW Park Blvd", "north west park boulevard"},
		{"crossing", "Eagle Xing", "eagle crossing"},
		{"court", "4 Maple Ct", "4 maple court"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.PreProcess(tt.in); got != tt.want {
				t.Errorf("PreProcess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
