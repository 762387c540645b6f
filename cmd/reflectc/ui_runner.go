package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"reflectc/internal/driver"
	"reflectc/internal/ui"
)

type dirOutcome struct {
	results []driver.ReflectResult
	err     error
}

func runReflectDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.DirOptions) ([]driver.ReflectResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		o := opts
		o.Sink = driver.ChannelSink{Ch: events}
		_, res, err := driver.ReflectDir(ctx, dir, o)
		outcomeCh <- dirOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		cancel()
	}
	// после выхода из UI (ctrl+c) воркеры не должны блокироваться на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
