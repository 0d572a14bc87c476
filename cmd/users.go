package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users, or choose the default user",
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

		if name, _ := cmd.Flags().GetString("set-default"); name != "" {
			if _, err := st.User(ctx, name); err != nil {
				return err
			}
			if err := st.SetDefaultUser(ctx, name); err != nil {
				return err
			}
			fmt.Printf("Default user is now %s.\n", name)
			return nil
		}

		users, err := st.Users(ctx)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No users yet.")
			return nil
		}
		current := ""
		if u, err := st.DefaultUser(ctx); err == nil {
			current = u.Name
		}
		for _, u := range users {
			marker := " "
			if u.Name == current {
				marker = "*"
			}
			fmt.Printf("%s %-20s online questions: %-5v last active: %s\n",
				marker, u.Name, u.FromOnline, u.LastActivity.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	usersCmd.Flags().String("set-default", "", "Make the named user the default for new sessions")
}
