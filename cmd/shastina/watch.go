package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/shastina"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-validate a document every time it is written",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchFile(cmd, args[0])
		},
	}
}

func watchFile(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	report := func() {
		entities, _, err := parseFile(path)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: read error: %v\n", path, err)
			return
		}
		last := entities[len(entities)-1]
		if last.Kind == shastina.Error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, last.Err.Message())
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d entities)\n", path, len(entities))
	}

	report()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				report()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "watch error: %v\n", err)
		case <-interrupt:
			return nil
		}
	}
}
