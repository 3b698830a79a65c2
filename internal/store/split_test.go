package store

import (
	"reflect"
	"testing"
)

func TestSplitPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   []string
	}{
		{
			name:   "mixed separators",
			prompt: "Buy milk, Call Bob; Clean",
			want:   []string{"Buy milk", "Call Bob", "Clean"},
		},
		{
			name:   "newlines",
			prompt: "one\ntwo\nthree",
			want:   []string{"one", "two", "three"},
		},
		{
			name:   "whitespace and empty fragments",
			prompt: " , ;\n  first  ,, second ;",
			want:   []string{"first", "second"},
		},
		{
			name:   "single task",
			prompt: "just one thing",
			want:   []string{"just one thing"},
		},
		{
			name:   "empty prompt",
			prompt: "",
			want:   []string{},
		},
		{
			name:   "only separators",
			prompt: ",;\n,;",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitPrompt(tt.prompt)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitPrompt(%q) = %v, want %v", tt.prompt, got, tt.want)
			}
		})
	}
}
