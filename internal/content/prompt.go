package content

import "fmt"

// OptionsPerQuestion is the number of choices every quiz question carries.
const OptionsPerQuestion = 4

// FlashcardPrompt builds the instruction for a deck of n slides. The
// answer is expected as blank-line separated "Title\nExplanation" blocks.
func FlashcardPrompt(req Request, n int) string {
	return fmt.Sprintf(
		"Create %d informative slides about %s for a %s grader in a way that makes the child understand. "+
			"Each slide should have a Title and Explanation and not just empty strings. "+
			"Avoid using any formatting like bold or italics.",
		n, req.Topic, req.GradeLevel,
	)
}

// QuizPrompt builds the instruction for n multiple-choice questions.
func QuizPrompt(req Request, n int) string {
	return fmt.Sprintf(
		"Create %d multiple-choice questions about %s for a %s grader. "+
			"Each question should have %d options and one correct answer. "+
			"Return the questions in JSON format with fields 'question', 'options', and 'correctAnswer'.",
		n, req.Topic, req.GradeLevel, OptionsPerQuestion,
	)
}
