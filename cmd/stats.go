package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/cogtests/internal/session"
	"github.com/abhisek/cogtests/internal/store"
	"github.com/abhisek/cogtests/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-question-type statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		name, _ := cmd.Flags().GetString("user")
		if name == "" {
			u, err := st.DefaultUser(ctx)
			if err != nil {
				return fmt.Errorf("no user given and no default user: %w", err)
			}
			name = u.Name
		}

		stats, err := st.Stats(ctx, name)
		if err != nil {
			return err
		}
		lipgloss.Println(theme.Title.Render("Statistics for " + name))
		if len(stats) == 0 {
			fmt.Println("No questions answered yet.")
			return nil
		}
		lipgloss.Println(statsTable(stats))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("user", "", "User to report on (default: the current default user)")
}

func statsTable(stats []store.KindStats) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.TextDim)).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(theme.Primary)
			}
			return s
		}).
		Headers("Type", "Questions", "Correct", "Gave up", "Incorrect", "Accuracy", "Mean time")
	for _, k := range stats {
		t.Row(
			k.Kind,
			strconv.Itoa(k.Total),
			strconv.Itoa(k.Correct),
			strconv.Itoa(k.GaveUp),
			strconv.Itoa(k.Incorrect),
			fmt.Sprintf("%.0f%%", 100*k.Accuracy()),
			session.RenderTime(k.MeanTime()),
		)
	}
	return t.String()
}
