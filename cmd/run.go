package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogtests/internal/config"
	"github.com/abhisek/cogtests/internal/console"
	"github.com/abhisek/cogtests/internal/dictionary"
	"github.com/abhisek/cogtests/internal/remote"
	"github.com/abhisek/cogtests/internal/session"
	"github.com/abhisek/cogtests/internal/variant"
)

// dialTimeout bounds connecting to the shared database.
const dialTimeout = 10 * time.Second

// runSession opens the store, builds dependencies, and runs one session.
func runSession(cmd *cobra.Command) error {
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

	reg := variant.Defaults(dictionary.New(cfg.DictionaryPath))
	opts := session.Options{
		Store:        st,
		Corpus:       st.Corpus(reg),
		Registry:     reg,
		Out:          console.NewOutput(os.Stdout),
		Attempts:     cfg.Attempts,
		SyncInterval: cfg.SyncInterval,
	}
	if cfg.TUI {
		opts.In = console.NewTUIInput(nil, nil)
	} else {
		opts.In = console.NewLineInput(os.Stdin, os.Stdout)
	}

	if cfg.Mongo.Enabled() {
		m, err := dialRemote(ctx, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning: shared database unavailable:", err)
			fmt.Fprintln(os.Stderr, "Sessions will be shared on the next successful sync.")
		} else {
			defer m.Close(context.Background())
			opts.Syncer = &remote.Syncer{Local: st, Remote: m, Out: os.Stdout}
		}
	}

	return session.New(opts).Run(ctx)
}

func dialRemote(ctx context.Context, cfg config.Config) (*remote.Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	return remote.Dial(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
}
