package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/petasbytes/personachat/chat"
	"github.com/petasbytes/personachat/internal/config"
	"github.com/petasbytes/personachat/internal/fsops"
	"github.com/petasbytes/personachat/internal/logger"
	"github.com/petasbytes/personachat/internal/provider"
	"github.com/petasbytes/personachat/internal/session"
	"github.com/petasbytes/personachat/internal/telemetry"
	"github.com/petasbytes/personachat/memory"
	"github.com/petasbytes/personachat/persona"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Configure(cfg.LogLevel)

	stateDir, err := fsops.EnsureStateDir(cfg.StateDir)
	if err != nil {
		return err
	}
	cfg.StateDir = stateDir
	telemetry.SetDir(stateDir)

	reg, err := persona.LoadOverlay(cfg.OverlayPath())
	if err != nil {
		return err
	}

	conv, err := openConversation(cfg, reg)
	if err != nil {
		return err
	}

	client, err := provider.New(cfg.Provider)
	if err != nil {
		return err
	}
	runner := session.New(client, cfg.HistoryWindow, cfg.PromptBudget)

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	sh := &shell{cfg: cfg, conv: conv, runner: runner}
	fmt.Printf("Persona chat — active persona: %s (type /help for commands)\n", conv.ActivePersona.DisplayLabel)

	// stdin reader goroutine -> lines into channel
	scanner := bufio.NewScanner(os.Stdin)
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

outer:
	for {
		fmt.Print("[94mYou[0m: ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case line, ok = <-inputCh:
			if !ok {
				break outer
			}
		}

		if strings.HasPrefix(strings.TrimSpace(line), "/") {
			if quit := sh.dispatch(strings.TrimSpace(line)); quit {
				break outer
			}
			continue
		}
		sh.send(ctx, line)
	}

	if err := scanner.Err(); err != nil {
		logger.Warn("stdin read error", "err", err)
	}
	return nil
}

// openConversation restores the persisted snapshot when persistence is on,
// falling back to a fresh conversation otherwise. A corrupt snapshot is
// reported and left on disk untouched; the session starts fresh.
func openConversation(cfg *config.Config, reg *persona.Registry) (*chat.Conversation, error) {
	if cfg.Persist {
		conv, err := memory.Load(cfg.SnapshotPath(), reg)
		switch {
		case err == nil && conv != nil:
			logger.Info("restored conversation", "messages", len(conv.History), "persona", conv.ActivePersona.Name)
			return conv, nil
		case errors.Is(err, memory.ErrCorruptState), errors.Is(err, persona.ErrUnknownPersona):
			logger.Warn("snapshot unusable, starting fresh", "err", err)
		case err != nil:
			return nil, err
		}
	}
	return chat.New(reg, cfg.Persona, cfg.Model, cfg.Temperature, cfg.MaxTokens)
}
