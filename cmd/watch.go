package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/semio-community/semio-community.github.io-sub001/internal/hubsync"
	"github.com/semio-community/semio-community.github.io-sub001/internal/watch"
)

var debounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Pulls from the content hub whenever hub content changes",
	Long: `watch performs an initial pull, then watches the hub's collections and pulls
again shortly after any Markdown or MDX file is created, changed or removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := runPull(ctx); err != nil {
			return err
		}

		hubRoot := appConfig.HubContentRoot()
		if err := hubsync.CheckRoot(hubRoot); err != nil {
			return err
		}
		w := &watch.Watcher{
			Root:     hubRoot,
			Debounce: debounce,
			OnChange: runPull,
		}
		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before pulling after a change")
	rootCmd.AddCommand(watchCmd)
}
