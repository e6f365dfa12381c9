package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/blockmail/composer/internal/blockio"
	"github.com/blockmail/composer/pkg/compose"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Viewport string // Viewport override
	Level    string // Accessibility level override
	Debounce int    // Debounce in milliseconds (0 uses config)
	Fix      bool   // Apply corrections instead of reporting only
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Revalidate layouts on change",
		Long: `Watch a layout file or directory and revalidate on every save.

Rapid successive saves are coalesced: validation runs once after the
configured quiet period. With --fix, corrections are written back to
the changed file, which does not retrigger a pass for the write itself.`,
		Example: `  # Watch a single layout
  composer watch newsletter.json

  # Watch a campaign directory and auto-fix
  composer watch campaigns/ --fix

  # Tighten the debounce window
  composer watch newsletter.json --debounce 200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Viewport, "viewport", "", "Viewport: mobile, tablet, desktop")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Accessibility level: WCAG-AA, WCAG-AAA")
	cmd.Flags().IntVar(&opts.Debounce, "debounce", 0, "Quiet period in milliseconds before revalidation")
	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Write corrections back on change")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, opts *WatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	applyOverrides(cfg, opts.Viewport, opts.Level, nil)
	if opts.Debounce > 0 {
		cfg.Watch.DebounceMs = opts.Debounce
	}
	debounce := debounceFor(cfg)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watching the containing directory also catches editors that replace
	// files via rename on save.
	watchTarget := path
	if !info.IsDir() {
		watchTarget = filepath.Dir(path)
	}
	if err := watcher.Add(watchTarget); err != nil {
		return fmt.Errorf("failed to watch %s: %w", watchTarget, err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		r.Println("\nStopping watcher")
		cancel()
	}()

	r.Printf("Watching %s (debounce %s)\n", path, debounce)

	// Track writes we issued so --fix does not retrigger itself. The map is
	// touched from both the event loop and the debounce timer goroutine.
	var selfMu sync.Mutex
	selfWrites := make(map[string]time.Time)

	runPass := func(target string) {
		eng := newEngine(cfg, logger)
		blocks, err := blockio.Load(target)
		if err != nil {
			r.Errorf("%s: %v", target, err)
			return
		}

		if opts.Fix {
			result, err := eng.Execute(ctx, blocks, compose.Options{})
			if err != nil {
				r.Errorf("%s: %v", target, err)
				return
			}
			if result.CorrectionsMade > 0 {
				selfMu.Lock()
				selfWrites[target] = time.Now()
				selfMu.Unlock()
				if err := blockio.Save(target, result.Blocks); err != nil {
					r.Errorf("%s: %v", target, err)
					return
				}
				r.Printf("%s: applied %d corrections\n", target, result.CorrectionsMade)
				return
			}
			r.Success(target + ": clean")
			return
		}

		violations, err := eng.Validate(ctx, blocks, compose.Options{})
		if err != nil {
			r.Errorf("%s: %v", target, err)
			return
		}
		renderCheckResults(r, []checkFileResult{{Path: target, Violations: violations}})
	}

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isLayoutFile(event.Name) {
				continue
			}
			if !info.IsDir() && filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			selfMu.Lock()
			at, self := selfWrites[event.Name]
			selfMu.Unlock()
			if self && time.Since(at) < debounce {
				continue
			}

			target := event.Name
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				r.Printf("Change detected: %s\n", filepath.Base(target))
				runPass(target)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// isLayoutFile reports whether the path looks like a block layout document.
func isLayoutFile(path string) bool {
	switch filepath.Ext(path) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
