package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/runner"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

func runWatch(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags, info BuildInfo) error {
	run, err := prepareCheck(cmd, args, cliCfg, flags, info)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()
	logger := logging.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	files, err := runner.Discover(ctx, run.runOpts)
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}
	for _, dir := range watchDirs(files) {
		if err := watcher.Add(dir); err != nil {
			return &ExitError{Code: ExitIOError, Err: fmt.Errorf("watch %s: %w", dir, err)}
		}
	}

	recheck := func() error {
		err := run.execute(ctx)
		if errors.Is(err, ErrIssuesFound) {
			return nil
		}
		return err
	}
	if err := recheck(); err != nil {
		return err
	}
	logger.Info("watching for changes", logging.FieldFiles, len(files))

	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isCheckedFile(event.Name, run.runOpts.Extensions) {
				continue
			}
			logger.Debug("file changed", logging.FieldPath, event.Name)
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)
		case <-timer.C:
			logger.Info("re-checking")
			if err := recheck(); err != nil {
				return err
			}
		}
	}
}

// watchDirs returns the sorted, distinct directories holding files.
func watchDirs(files []string) []string {
	dirs := make([]string, 0, len(files))
	for _, file := range files {
		dirs = append(dirs, filepath.Dir(file))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// isCheckedFile reports whether a changed path would be discovered.
func isCheckedFile(path string, extensions []string) bool {
	if len(extensions) == 0 {
		extensions = config.DefaultExtensions()
	}
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	for _, want := range extensions {
		if strings.EqualFold(want, ext) || strings.EqualFold(want, name) {
			return true
		}
	}
	return false
}
