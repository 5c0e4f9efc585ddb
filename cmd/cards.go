package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/flashcards"
)

const cardWidth = 72

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Generate flashcards for a topic and print them",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFlags(cmd)
		if err != nil {
			return err
		}
		interactive, _ := cmd.Flags().GetBool("interactive")

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

		nav := flashcards.New(nil)
		tok := nav.Activate(req)
		dimColor.Fprintf(os.Stderr, "Creating flashcards for %s (%s)...\n", req.Topic, req.GradeLevel)
		deck, err := source.Flashcards(cmd.Context(), req)
		nav.Load(tok, deck, err)
		if nav.State() == flashcards.Failed {
			return fmt.Errorf("%s: %w", content.Reason(nav.Err()), nav.Err())
		}

		if interactive {
			return pageCards(os.Stdin, os.Stdout, nav)
		}
		for i, slide := range deck {
			printSlide(os.Stdout, i, len(deck), slide)
		}
		return nil
	},
}

// requestFlags reads --topic and --grade.
func requestFlags(cmd *cobra.Command) (content.Request, error) {
	topic, _ := cmd.Flags().GetString("topic")
	grade, _ := cmd.Flags().GetString("grade")
	req, err := content.NewRequest(topic, grade)
	if err != nil {
		return req, fmt.Errorf("both --topic and --grade are required: %w", err)
	}
	return req, nil
}

func printSlide(w io.Writer, index, total int, slide content.Slide) {
	dimColor.Fprintf(w, "Card %d of %d\n", index+1, total)
	titleColor.Fprintln(w, slide.Title)
	fmt.Fprintln(w, wordwrap.String(slide.Explanation, cardWidth))
	fmt.Fprintln(w)
}

// pageCards shows one card at a time: n (or enter) for next, p for
// previous, q to quit.
func pageCards(in io.Reader, out io.Writer, nav *flashcards.Navigator) error {
	scanner := bufio.NewScanner(in)
	for {
		slide, ok := nav.Current()
		if !ok {
			return nil
		}
		printSlide(out, nav.Index(), nav.Len(), slide)
		dimColor.Fprintf(out, "%d%% complete  [n]ext [p]rev [q]uit > ", int(nav.Progress()*100+0.5))

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "n":
			if !nav.Advance(flashcards.Forward) {
				fmt.Fprintln(out, "That was the last card.")
			}
		case "p":
			if !nav.Advance(flashcards.Backward) {
				fmt.Fprintln(out, "This is the first card.")
			}
		case "q":
			return nil
		default:
			fmt.Fprintln(out, "Use n, p or q.")
		}
		fmt.Fprintln(out)
	}
}

func init() {
	cardsCmd.Flags().StringP("topic", "t", "", "Topic to study")
	cardsCmd.Flags().StringP("grade", "g", "", "Grade level or age")
	cardsCmd.Flags().BoolP("interactive", "i", false, "Page through the cards one at a time")
}
