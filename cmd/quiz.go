package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/quiz"
	"github.com/EkalavyanS/Flashy/internal/ui/components"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a generated multiple-choice quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFlags(cmd)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := stderrLogger(cfg)
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		source, err := newSource(cmd.Context(), cfg, st.EventRepo(), log)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		nav := quiz.New(nil)
		tok := nav.Activate(req)
		dimColor.Fprintf(os.Stderr, "Writing a quiz on %s (%s)...\n", req.Topic, req.GradeLevel)
		set, err := source.Quiz(cmd.Context(), req)
		nav.Load(tok, set, err)
		if nav.State() == quiz.Failed {
			return fmt.Errorf("%s: %w", content.Reason(nav.Err()), nav.Err())
		}
		return playQuiz(os.Stdin, os.Stdout, nav)
	},
}

var (
	correctColor   = color.New(color.FgGreen, color.Bold)
	incorrectColor = color.New(color.FgRed, color.Bold)
	selectedColor  = color.New(color.FgBlue, color.Bold)
)

// playQuiz runs the question loop on in/out until the quiz completes
// or the user quits. Commands: a number selects an option, s (or an
// empty line) submits, n moves on, b goes back and q quits.
func playQuiz(in io.Reader, out io.Writer, nav *quiz.Navigator) error {
	scanner := bufio.NewScanner(in)
	for nav.State() == quiz.Ready {
		printQuestion(out, nav)

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		fmt.Fprintln(out)

		switch line {
		case "q":
			return nil
		case "", "s":
			if nav.Answered() {
				nav.Next()
			} else if _, ok := nav.Submit(); !ok {
				fmt.Fprintln(out, "Pick an option first.")
			}
		case "n":
			if !nav.Next() {
				fmt.Fprintln(out, "Submit an answer first.")
			}
		case "b":
			if !nav.Back() {
				fmt.Fprintln(out, "You can only go back to an earlier question before answering.")
			}
		default:
			n, err := strconv.Atoi(line)
			if err != nil || !nav.SelectIndex(n-1) {
				fmt.Fprintln(out, "Type an option number, s, n, b or q.")
			}
		}
	}

	if nav.State() == quiz.Complete {
		printResults(out, nav)
	}
	return nil
}

func printQuestion(out io.Writer, nav *quiz.Navigator) {
	q, _ := nav.Current()
	dimColor.Fprintf(out, "Question %d of %d    Score: %d\n", nav.Index()+1, nav.Total(), nav.Score())
	titleColor.Fprintln(out, wordwrap.String(q.Prompt, cardWidth))

	selected := nav.SelectedIndex()
	for i, opt := range q.Options {
		label := strconv.Itoa(i + 1)
		if i < len(components.OptionLabels) {
			label = components.OptionLabels[i]
		}
		line := fmt.Sprintf("%d) %s. %s", i+1, label, opt)
		switch {
		case nav.Answered() && q.IsCorrect(opt):
			correctColor.Fprintln(out, "✓ "+line)
		case nav.Answered() && i == selected:
			incorrectColor.Fprintln(out, "✗ "+line)
		case i == selected:
			selectedColor.Fprintln(out, "▸ "+line)
		default:
			fmt.Fprintln(out, "  "+line)
		}
	}

	if fb := nav.Feedback(); fb != "" {
		if nav.LastCorrect() {
			correctColor.Fprintln(out, fb)
		} else {
			incorrectColor.Fprintln(out, fb)
		}
		dimColor.Fprintf(out, "[n] %s  [q]uit > ", nav.NextLabel())
		return
	}
	prompt := "1-4 choose  [s]ubmit"
	if nav.CanBack() {
		prompt += "  [b]ack"
	}
	dimColor.Fprintf(out, "%s  [q]uit > ", prompt)
}

func printResults(out io.Writer, nav *quiz.Navigator) {
	titleColor.Fprintln(out, "Quiz Complete!")
	fmt.Fprintf(out, "Your score: %d/%d (%d%%)\n", nav.Score(), nav.Total(), nav.Percentage())
	if nav.Perfect() {
		correctColor.Fprintln(out, "Perfect score! 🏆")
	}
}
