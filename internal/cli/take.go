package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"career-guidance/internal/app"
	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/identity"
	"career-guidance/internal/domain/recommendation"
	"career-guidance/internal/domain/riasec"
	"career-guidance/internal/infrastructure/localstore"
	"career-guidance/internal/pkg/jwt"
	"career-guidance/internal/usecase"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	choiceBack   = "« Back"
	choiceSubmit = "Submit"
	choiceQuit   = "Save and quit"
)

var (
	errQuit        = errors.New("quit requested")
	errNotTerminal = errors.New("take needs an interactive terminal")

	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
	titleColor = color.New(color.Bold)
)

// Chooser asks the user to pick one of items and returns its index.
type Chooser interface {
	Choose(label string, items []string) (int, error)
}

type promptChooser struct{}

func (promptChooser) Choose(label string, items []string) (int, error) {
	p := promptui.Select{Label: label, Items: items, Size: len(items)}
	i, _, err := p.Run()
	return i, err
}

// Finisher scores and records a completed session.
type Finisher interface {
	Finish(ctx context.Context, ident identity.Context, s *assessment.Session) (assessment.Result, error)
}

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take an assessment in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if fd := os.Stdin.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return errNotTerminal
		}
		if err := cfg.RequireJWT(); err != nil {
			return err
		}

		v := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AdminRole)
		claims, err := v.ValidateToken(strings.TrimSpace(viper.GetString("token")))
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
		ident := v.Identity(claims)

		store, err := localstore.NewFileStore(cfg.LocalStore.Dir)
		if err != nil {
			return err
		}
		c, err := app.NewContainer(ctx, cfg, zl, app.WithLocalCache(store))
		if err != nil {
			return err
		}
		defer c.Close()

		s, err := c.Assessment.OpenSession(ctx, ident.UserID, viper.GetString("type"))
		if err != nil {
			return err
		}

		_, err = Take(ctx, c.Assessment, ident, s, promptChooser{}, cmd.OutOrStdout())
		if errors.Is(err, errQuit) || errors.Is(err, promptui.ErrInterrupt) {
			fmt.Fprintln(cmd.OutOrStdout(), "Progress saved. Run take again to continue.")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(takeCmd)

	takeCmd.Flags().StringP("token", "t", "", "access token (default $CAREERCTL_TOKEN)")
	takeCmd.Flags().String("type", assessment.TypeRIASEC, "assessment type")

	_ = viper.BindPFlag("token", takeCmd.Flags().Lookup("token"))
	_ = viper.BindPFlag("type", takeCmd.Flags().Lookup("type"))
	_ = viper.BindEnv("token", "CAREERCTL_TOKEN")
}

// Take drives s until it is submitted. A failed result write leaves the
// session open so the user can retry; a history warning still returns the
// result.
func Take(ctx context.Context, f Finisher, ident identity.Context, s *assessment.Session, ch Chooser, out io.Writer) (assessment.Result, error) {
	if s.Len() == 0 {
		return assessment.Result{}, errors.New("no questions available")
	}
	for {
		q, ok := s.Current()
		if !ok {
			return assessment.Result{}, assessment.ErrSessionCompleted
		}

		items := make([]string, 0, len(q.Options)+3)
		for _, o := range q.Options {
			items = append(items, o.Label)
		}
		if s.Index() > 0 {
			items = append(items, choiceBack)
		}
		last := s.Index() == s.Len()-1
		if last {
			items = append(items, choiceSubmit)
		}
		items = append(items, choiceQuit)

		label := fmt.Sprintf("[%d/%d] %s", s.Index()+1, s.Len(), q.Prompt)
		if v, answered := s.Answers()[q.ID]; answered {
			label += fmt.Sprintf(" (current: %d)", v)
		}
		i, err := ch.Choose(label, items)
		if err != nil {
			return assessment.Result{}, err
		}

		if i < len(q.Options) {
			err := s.RecordAnswer(ctx, q.ID, q.Options[i].Value)
			if err == nil && !last {
				err = s.Advance(ctx)
			}
			if err != nil && !warnProgress(out, err) {
				return assessment.Result{}, err
			}
			continue
		}

		switch items[i] {
		case choiceBack:
			if err := s.Retreat(ctx); err != nil && !warnProgress(out, err) {
				return assessment.Result{}, err
			}
		case choiceQuit:
			return assessment.Result{}, errQuit
		case choiceSubmit:
			res, err := f.Finish(ctx, ident, s)
			switch {
			case err == nil:
				printResult(out, res)
				return res, nil
			case errors.Is(err, usecase.ErrHistoryNotUpdated):
				printResult(out, res)
				warnColor.Fprintln(out, "warning: result saved but not yet listed in your history")
				return res, nil
			case errors.Is(err, usecase.ErrResultNotSaved):
				errColor.Fprintln(out, "error: result could not be saved; your answers are kept, submit again")
			default:
				return assessment.Result{}, err
			}
		}
	}
}

func warnProgress(out io.Writer, err error) bool {
	if errors.Is(err, assessment.ErrProgressNotSaved) {
		warnColor.Fprintln(out, "warning: progress not saved; it will be lost if you quit")
		return true
	}
	return false
}

func printResult(out io.Writer, res assessment.Result) {
	titleColor.Fprintf(out, "\nResult %s (total %d)\n", res.ID, res.TotalScore)
	for _, c := range recommendation.TopCategories(res.Scores, len(riasec.Categories)) {
		fmt.Fprintf(out, "  %-13s %d\n", c.Name(), res.Scores.Get(c))
	}
	if len(res.Recommendations) == 0 {
		fmt.Fprintln(out, "No matching careers found.")
		return
	}
	titleColor.Fprintln(out, "\nRecommended careers:")
	for i, r := range res.Recommendations {
		fmt.Fprintf(out, "  %d. %s (match %d)\n", i+1, r.Title, r.MatchScore)
	}
}
