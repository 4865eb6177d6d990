// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - the "fsidx shell" command.
//
// Command: shell
// Short:   Interactive prompt for locate queries
//
// Plain lines are locate queries; the numbered results become the
// current selection. Backslash commands operate on the shell itself:
//
//	\q             quit
//	\h             help
//	\u             rescan folders and update the databases
//	\o <rule>...   open selection entries (see openrule.go)
//	\r             recent queries
//
// Ctrl-C interrupts the running query, Ctrl-D exits.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterh/liner"

	"github.com/jeranaias/fsidx/internal/config"
	"github.com/jeranaias/fsidx/internal/history"
	"github.com/jeranaias/fsidx/internal/query"
	"github.com/jeranaias/fsidx/internal/search"
)

// completions offered for a partial word at the prompt.
var shellCompletions = []string{
	"--case-sensitive", "--case-insensitive",
	"--any-order", "--same-order",
	"--whole-path", "--last-element",
	"--smart-spaces", "--no-smart-spaces",
	"--word-boundary", "--no-word-boundary",
	"--literal-separator", "--no-literal-separator",
	"--auto", "--plain", "--glob",
	"\\q", "\\h", "\\u", "\\o", "\\r",
}

// Shell runs the interactive prompt until Ctrl-D or \q.
func Shell(cfg *config.Config, opts *Options) error {
	styles := NewStyles()

	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)
	rl.SetCompleter(func(line string) []string {
		word := line
		if i := strings.LastIndexAny(line, " \t"); i >= 0 {
			word = line[i+1:]
		}
		if word == "" {
			return nil
		}
		var out []string
		for _, cand := range shellCompletions {
			if strings.HasPrefix(cand, word) {
				out = append(out, line[:len(line)-len(word)]+cand)
			}
		}
		return out
	})

	historyFile := filepath.Join(cfg.Index.DBPath, "history.txt")
	if f, err := os.Open(historyFile); err == nil {
		rl.ReadHistory(f)
		f.Close()
	}

	store, err := history.Open(filepath.Join(cfg.Index.DBPath, "history.db"), uuid.NewString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: query history disabled: %v\n", styles.Error.Render("Warning"), err)
		store = nil
	} else {
		defer store.Close()
	}

	sh := &shell{
		cfg:    cfg,
		opts:   opts,
		styles: styles,
		store:  store,
	}
	sh.printWelcome()

	for {
		line, err := rl.Prompt("> ")
		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			saveHistory(rl, historyFile)
			return nil
		default:
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rl.AppendHistory(line)
		quit, err := sh.process(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", styles.Error.Render("Error"), err)
		}
		if quit {
			saveHistory(rl, historyFile)
			return nil
		}
	}
}

func saveHistory(rl *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	rl.WriteHistory(f)
}

type shell struct {
	cfg       *config.Config
	opts      *Options
	styles    *Styles
	store     *history.Store
	selection *Selection
}

func (s *shell) printWelcome() {
	fmt.Println(s.styles.Muted.Render("Ctrl-C interrupts a running query, Ctrl-D exits, \\h prints help."))
}

// process handles one input line. The returned bool requests shutdown.
func (s *shell) process(line string) (bool, error) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "\\") {
		return s.command(trimmed)
	}
	// A line like "12." or "3.-7." reuses the previous selection.
	fields := strings.Fields(trimmed)
	if len(fields) > 0 && ParseOpenRule(fields[0]).IsIndexed() {
		return false, s.open(fields)
	}
	return false, s.locate(line)
}

func (s *shell) command(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "\\q":
		return true, nil
	case "\\h":
		printShellHelp(s.styles)
		return false, nil
	case "\\u":
		ctx, cancel := s.interruptible()
		defer cancel()
		return false, HandleUpdate(ctx, s.cfg, s.opts, nil)
	case "\\o":
		return false, s.open(fields[1:])
	case "\\r":
		return false, s.recent()
	default:
		printShellHelp(s.styles)
		return false, nil
	}
}

// locate runs one query line. A query that produced hits replaces the
// selection; a query without hits leaves the previous selection in place.
func (s *shell) locate(line string) error {
	defaults, err := s.cfg.Flags()
	if err != nil {
		return err
	}
	tokens, err := query.Parse(line, defaults)
	if err != nil {
		return err
	}
	selection := &Selection{}
	sink := &printSink{
		out:       os.Stdout,
		errOut:    os.Stderr,
		verbose:   s.opts.Verbose(),
		styles:    s.styles,
		selection: selection,
	}
	ctx, cancel := s.interruptible()
	defer cancel()
	started := time.Now()
	err = search.Run(ctx, s.cfg.Volumes(), tokens, sink)
	if errors.Is(err, search.ErrCancelled) {
		fmt.Println("Interrupted.")
		err = nil
	}
	if err != nil {
		return err
	}
	if s.store != nil {
		if rerr := s.store.Record(line, sink.hits, time.Since(started)); rerr != nil && s.opts.Verbose() {
			fmt.Fprintf(os.Stderr, "recording history: %v\n", rerr)
		}
	}
	if selection.Len() > 0 {
		s.selection = selection
	}
	return nil
}

// interruptible returns a context cancelled by the next Ctrl-C. Callers
// must call the cancel function when the operation finishes so the
// signal registration is released and the prompt's own Ctrl-C handling
// takes over again.
func (s *shell) interruptible() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	go func() {
		defer signal.Stop(sigc)
		select {
		case <-sigc:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func (s *shell) open(args []string) error {
	if s.selection == nil || s.selection.Len() == 0 {
		return errors.New("run a query first")
	}
	if len(args) == 0 {
		return errors.New("\\o needs at least one selection reference")
	}
	var paths []string
	for _, arg := range args {
		rule := ParseOpenRule(arg)
		err := rule.Expand(s.selection, func(path string) error {
			if _, err := os.Stat(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %s does not exist (device not mounted?)\n",
					s.styles.Error.Render("Error"), path)
				return nil
			}
			fmt.Printf("Opening: %s\n", path)
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return err
		}
	}
	if len(paths) == 0 {
		return nil
	}
	cmd := exec.Command(openCommand(), paths...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", openCommand(), err)
	}
	go cmd.Wait()
	return nil
}

func openCommand() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// recent prints the latest entries of the persistent query history.
func (s *shell) recent() error {
	if s.store == nil {
		return errors.New("query history is disabled")
	}
	entries, err := s.store.Recent(20)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No recorded queries yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s %s\n",
			s.styles.Muted.Render(e.When.Format("2006-01-02 15:04")),
			e.Query,
			s.styles.Muted.Render(fmt.Sprintf("(%d hits)", e.Hits)))
	}
	return nil
}
