package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/quiz"
)

func loadedQuiz(t *testing.T, n int) *quiz.Navigator {
	t.Helper()
	set := make(content.QuestionSet, n)
	for i := range set {
		set[i] = content.Question{
			Prompt:        fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"Sunlight", "Water", "Soil", "Air"},
			CorrectAnswer: "Sunlight",
		}
	}
	nav := quiz.New(nil)
	tok := nav.Activate(content.Request{Topic: "Photosynthesis", GradeLevel: "5th Grade"})
	if !nav.Load(tok, set, nil) {
		t.Fatal("load rejected")
	}
	return nav
}

func TestPlayQuiz(t *testing.T) {
	nav := loadedQuiz(t, 3)
	// Q1 correct, Q2 wrong, Q3 correct. The empty line after each
	// submit moves on.
	input := "1\ns\n\n2\ns\nn\n1\ns\nn\n"
	var out bytes.Buffer
	if err := playQuiz(strings.NewReader(input), &out, nav); err != nil {
		t.Fatalf("playQuiz: %v", err)
	}
	if nav.State() != quiz.Complete {
		t.Fatalf("state = %v, want complete", nav.State())
	}
	got := out.String()
	for _, want := range []string{"Correct!", "Incorrect! Correct: Sunlight", "See Results", "Quiz Complete!", "Your score: 2/3 (67%)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(got, "Perfect score!") {
		t.Error("2/3 is not perfect")
	}
}

func TestPlayQuizGuards(t *testing.T) {
	nav := loadedQuiz(t, 2)
	input := "s\nn\n9\nx\n1\ns\nb\nq\n"
	var out bytes.Buffer
	if err := playQuiz(strings.NewReader(input), &out, nav); err != nil {
		t.Fatalf("playQuiz: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Pick an option first.",
		"Submit an answer first.",
		"Type an option number",
		"You can only go back",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if nav.Score() != 1 || nav.State() != quiz.Ready {
		t.Errorf("score=%d state=%v", nav.Score(), nav.State())
	}
}

func TestPlayQuizPerfect(t *testing.T) {
	nav := loadedQuiz(t, 2)
	var out bytes.Buffer
	if err := playQuiz(strings.NewReader("1\ns\nn\n1\ns\nn\n"), &out, nav); err != nil {
		t.Fatalf("playQuiz: %v", err)
	}
	if !strings.Contains(out.String(), "Perfect score!") {
		t.Error("expected perfect score message")
	}
}
