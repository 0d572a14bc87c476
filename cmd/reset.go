package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogtests/internal/console"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local sessions and users",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			in := console.NewLineInput(os.Stdin, os.Stdout)
			answer, err := in.ReadLine(ctx, "This deletes every session and user stored on this machine. Type 'yes' to continue.")
			if err != nil {
				return err
			}
			if strings.TrimSpace(answer) != "yes" {
				fmt.Println("Nothing deleted.")
				return nil
			}
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteTranscripts(ctx); err != nil {
			return err
		}
		if err := st.DeleteUsers(ctx); err != nil {
			return err
		}
		fmt.Println("Local data deleted. Sessions already shared remain in the shared database.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
