package store

import "strings"

// SplitPrompt is the fallback task generator: it breaks a free-text prompt
// into task texts on newlines, commas, and semicolons, trimming whitespace
// and dropping empty fragments. Fragment order is preserved.
func SplitPrompt(prompt string) []string {
	fragments := strings.FieldsFunc(prompt, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';'
	})

	texts := []string{}
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		texts = append(texts, f)
	}
	return texts
}
