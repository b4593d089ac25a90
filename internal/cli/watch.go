package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/updatefeed/updatefeed/internal/errors"
	"github.com/updatefeed/updatefeed/internal/notify"
	"github.com/updatefeed/updatefeed/internal/output"
)

// watchDebounce coalesces bursts of ref updates (a rebase touches the HEAD
// log many times) into one regeneration.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the feed whenever new commits land",
	Long: `Watch observes the repository's HEAD reflog and reruns generation
after each new commit. It is a convenience for local development; for
shared checkouts prefer 'updatefeed hook install'.`,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("root", ".", "Repository root to watch")
	watchCmd.Flags().Bool("notify", false, "Send a desktop notification after each regeneration")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	logsDir := filepath.Join(root, ".git", "logs")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(logsDir); err != nil {
		return errors.WrapWithMessage(err, errors.Repository, "watching "+logsDir,
			"Run inside a git repository with at least one commit, or pass --root")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "watching %s (Ctrl+C to stop)\n", logsDir)

	var sender notify.Sender
	if wantNotify, _ := cmd.Flags().GetBool("notify"); wantNotify {
		sender = notify.NewSender()
		if !sender.Available() {
			output.PrintWarning(out, "desktop notifications are not available on this system")
			sender = nil
		}
	}

	// Generate once up front so the artifacts exist before the first commit.
	if err := runGenerate(cmd, nil); err != nil {
		return err
	}

	return watchLoop(ctx, cmd, watcher, sender, out)
}

// watchLoop debounces watcher events and reruns generation after each
// quiet period. Watcher errors are reported but don't stop the loop.
func watchLoop(ctx context.Context, cmd *cobra.Command, watcher *fsnotify.Watcher, sender notify.Sender, out io.Writer) error {
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() {
			select {
			case pending <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				schedule()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.PrintWarning(out, "watch error: "+err.Error())
		case <-pending:
			err := runGenerate(cmd, nil)
			if err != nil {
				output.PrintWarning(out, "generation failed: "+err.Error())
			}
			notifyResult(sender, err)
		}
	}
}

// notifyResult dispatches a desktop notification for one regeneration.
// Delivery failures are ignored; notifications are best effort.
func notifyResult(sender notify.Sender, err error) {
	if sender == nil {
		return
	}
	n := notify.New("updatefeed", "updates feed regenerated", notify.TypeSuccess)
	if err != nil {
		n = notify.New("updatefeed", "generation failed: "+err.Error(), notify.TypeFailure)
	}
	_ = sender.Send(n)
}
