package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogtests/internal/remote"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Exchange sessions with the shared database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.Mongo.Enabled() {
			return errors.New("no shared database configured: set COGTESTS_MONGO_URI")
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		m, err := dialRemote(ctx, cfg)
		if err != nil {
			return err
		}
		defer m.Close(context.Background())

		s := &remote.Syncer{Local: st, Remote: m, Out: os.Stdout}
		res, err := s.Sync(ctx)
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		fmt.Printf("Pushed %d, imported %d, skipped %d.\n", res.Pushed, res.Imported, res.Skipped)
		return nil
	},
}
