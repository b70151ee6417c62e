package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/TelmenBay/leetlog/internal/journal"
	"github.com/TelmenBay/leetlog/internal/readiness"
	"github.com/TelmenBay/leetlog/internal/render"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a LeetCode problem to your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		up, err := a.Journal.AddProblem(cmd.Context(), a.Config.User, args[0])
		if err != nil {
			return err
		}
		lipgloss.Printf("%s %d. %s (%s)\n%s\n",
			render.Title.Render("Added"), up.Problem.ExternalID, up.Problem.Title,
			render.DifficultyLabel(up.Problem.Difficulty), render.Hint.Render("id: "+up.ID))
		return nil
	},
}

var logCmd = &cobra.Command{
	Use:   "log <user-problem-id>",
	Short: "Record an attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spent, _ := cmd.Flags().GetString("time")
		status, _ := cmd.Flags().GetString("status")
		notes, _ := cmd.Flags().GetString("notes")
		solutionFile, _ := cmd.Flags().GetString("solution-file")

		secs, err := parseTimeSpent(spent)
		if err != nil {
			return err
		}
		var solution string
		if solutionFile != "" {
			b, err := os.ReadFile(solutionFile)
			if err != nil {
				return fmt.Errorf("read solution: %w", err)
			}
			solution = string(b)
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Journal.SubmitLog(cmd.Context(), a.Config.User, args[0], journal.AttemptInput{
			TimeSpent: secs,
			Status:    status,
			Notes:     notes,
			Solution:  solution,
		})
		if err != nil {
			return err
		}
		up := res.UserProblem
		lipgloss.Printf("%s %s in %s\n%s best %s, %s\n",
			render.Title.Render("Logged"), res.Log.Status, readiness.FormatTime(&res.Log.TimeSpent),
			up.Problem.Title, up.BestTime, render.Badge(up.Readiness))
		return nil
	},
}

// parseTimeSpent accepts a Go duration ("25m", "1h5m") or plain seconds.
func parseTimeSpent(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --time %q: use seconds or a duration like 25m", s)
	}
	return int(d / time.Second), nil
}

var logsCmd = &cobra.Command{
	Use:   "logs <user-problem-id>",
	Short: "Show every attempt for a problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		logs, err := a.Journal.Logs(cmd.Context(), a.Config.User, args[0])
		if err != nil {
			return err
		}
		lipgloss.Println(render.Logs(logs))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <user-problem-id>...",
	Short: "Remove problems and their logs from your list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		force, _ := cmd.Flags().GetBool("yes")
		prefs, err := a.Journal.Preferences(cmd.Context(), a.Config.User)
		if err != nil {
			return err
		}
		if !force && !prefs.SkipDeleteConfirm {
			return errors.New("refusing to delete without --yes (or enable skipDeleteConfirm in preferences)")
		}

		n, err := a.Journal.DeleteUserProblems(cmd.Context(), a.Config.User, args)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d problem(s)\n", n)
		return nil
	},
}

var rmlogCmd = &cobra.Command{
	Use:   "rmlog <log-id>",
	Short: "Delete one attempt and recompute the best time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		up, err := a.Journal.DeleteLog(cmd.Context(), a.Config.User, args[0])
		if err != nil {
			return err
		}
		lipgloss.Printf("%s %s best %s, %s\n",
			render.Title.Render("Deleted"), up.Problem.Title, up.BestTime, render.Badge(up.Readiness))
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show tracked problems with their readiness",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		views, err := a.Journal.Dashboard(cmd.Context(), a.Config.User)
		if err != nil {
			return err
		}
		lipgloss.Println(render.Dashboard(views))
		return nil
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show category scores and GPA",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sum, err := a.Journal.Analytics(cmd.Context(), a.Config.User)
		if err != nil {
			return err
		}
		lipgloss.Println(render.Analytics(sum))
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Clear best times whose logs have all expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Journal.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Updated %d problem(s)\n", n)
		return nil
	},
}

func init() {
	logCmd.Flags().String("time", "", "Time spent, in seconds or as a duration (25m, 1h5m)")
	logCmd.Flags().String("status", "", "solved or attempted (default: solved when time > 0)")
	logCmd.Flags().String("notes", "", "Free-form notes")
	logCmd.Flags().String("solution-file", "", "Read the solution from this file")

	rmCmd.Flags().BoolP("yes", "y", false, "Skip the delete confirmation")
}
