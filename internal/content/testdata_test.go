package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// slidesText builds a blank-line separated deck answer with n slides.
func slidesText(n int) string {
	blocks := make([]string, n)
	for i := range blocks {
		blocks[i] = fmt.Sprintf("**Fact %d**\nPlants turn sunlight into food, part %d.\nThey use water too.", i+1, i+1)
	}
	return strings.Join(blocks, "\n\n")
}

// quizJSON builds a quiz answer with n valid questions.
func quizJSON(n int) string {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Prompt:        fmt.Sprintf("Question %d: what do plants need for photosynthesis?", i+1),
			Options:       []string{"Sunlight", "Sand", "Plastic", "Noise"},
			CorrectAnswer: "Sunlight",
		}
	}
	b, _ := json.Marshal(qs)
	return string(b)
}
