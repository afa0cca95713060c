package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnflix/learnflix/internal/activity"
	"github.com/learnflix/learnflix/internal/auth"
	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/nav"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer the activities in the terminal without the TUI",
	Long: `Run an activity session on plain stdin/stdout.

The five activity formats are asked in tab order until the session is
complete. Nothing is saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		return runPractice(cat.Activities, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runPractice(content catalog.Activities, in io.Reader, out io.Writer) error {
	state := learner.NewState()
	navigator := nav.New(state)
	if _, err := auth.NewService(state, navigator).Login(learner.MethodGuest); err != nil {
		return err
	}
	if _, err := navigator.GoTo(nav.Activities); err != nil {
		return err
	}

	sess := activity.NewSession(content)
	scanner := bufio.NewScanner(in)

	for round := 0; !sess.Complete(); round++ {
		t := activity.AllTypes()[round%len(activity.AllTypes())]
		if err := sess.SelectType(t); err != nil {
			return err
		}

		fmt.Fprintf(out, "── %s (%d/%d) ──\n", t.Label(), sess.Score(), activity.TotalQuestions)
		printPrompt(out, t, content)

		fmt.Fprint(out, "\nSua resposta: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(entrada encerrada)")
			break
		}
		answer, err := parseAnswer(t, strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(out, "%v\n\n", err)
			continue
		}

		v, err := sess.Submit(t, answer)
		switch {
		case errors.Is(err, activity.ErrNoAnswer):
			fmt.Fprint(out, "(pulado)\n\n")
			continue
		case err != nil:
			fmt.Fprintf(out, "%v\n\n", err)
			continue
		}
		if v == activity.VerdictCorrect {
			fmt.Fprint(out, "\033[32m✓ Correto!\033[0m\n\n")
		} else {
			fmt.Fprint(out, "\033[31m✗ Tente novamente.\033[0m\n\n")
		}
	}

	snap := sess.Snapshot()
	fmt.Fprintf(out, "── Resultado: %d/%d (%d%%) ──\n", snap.Score, snap.TotalQuestions, snap.Percent())
	if snap.Complete {
		if err := sess.ClaimReward(state, navigator); err != nil {
			return err
		}
		fmt.Fprintf(out, "+%d XP, total %d XP\n", activity.RewardXP, state.XP())
	}
	return nil
}

func printPrompt(out io.Writer, t activity.Type, c catalog.Activities) {
	switch t {
	case activity.FillBlank:
		fmt.Fprintf(out, "%s _____ %s\n", c.FillBlank.Before, c.FillBlank.After)
	case activity.DragDrop:
		fmt.Fprintln(out, c.DragDrop.Instruction)
		fmt.Fprintln(out, strings.Join(c.DragDrop.Words, " · "))
	case activity.Quiz:
		fmt.Fprintln(out, c.Quiz.Question)
		for i, o := range c.Quiz.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o)
		}
	case activity.ListenWrite:
		fmt.Fprintln(out, c.ListenWrite.Prompt)
	case activity.Speaking:
		fmt.Fprintf(out, "Diga em voz alta: %q\n", c.Speaking.Phrase)
	}
}

// parseAnswer converts a typed line into an answer. Quiz options are
// numbered from 1.
func parseAnswer(t activity.Type, line string) (activity.Answer, error) {
	if t != activity.Quiz {
		return activity.TextAnswer(line), nil
	}
	if line == "" {
		return activity.ChoiceAnswer(activity.NoChoice), nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return activity.Answer{}, fmt.Errorf("digite o número da opção: %w", err)
	}
	return activity.ChoiceAnswer(n - 1), nil
}
