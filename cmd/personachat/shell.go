package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/petasbytes/personachat/chat"
	"github.com/petasbytes/personachat/internal/config"
	"github.com/petasbytes/personachat/internal/fsops"
	"github.com/petasbytes/personachat/internal/logger"
	"github.com/petasbytes/personachat/internal/provider"
	"github.com/petasbytes/personachat/internal/session"
	"github.com/petasbytes/personachat/memory"
)

// shell wires user actions to the conversation, gateway, and adapters.
// It owns the single Conversation value and threads it through every action.
type shell struct {
	cfg    *config.Config
	conv   *chat.Conversation
	runner *session.Runner
}

// send runs one full chat turn: append the user message, complete, render,
// persist. Gateway failures are display-only; the user message stays.
func (s *shell) send(ctx context.Context, text string) {
	if _, err := s.conv.AppendUser(text); err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			fmt.Println("Please type a message.")
			return
		}
		fmt.Printf("error: %v\n", err)
		return
	}

	reply, err := s.runner.RunTurn(ctx, s.conv)
	if err != nil {
		s.reportGatewayError(err)
		s.persist()
		return
	}

	fmt.Printf("[93m%s[0m: %s\n", s.conv.ActivePersona.DisplayLabel, reply.Content)
	s.persist()
}

func (s *shell) reportGatewayError(err error) {
	switch {
	case errors.Is(err, provider.ErrAuthentication):
		fmt.Println("Authentication failed. Check your API key; your message is kept.")
	case errors.Is(err, provider.ErrRateLimit):
		fmt.Println("Rate limited by the provider. Wait a moment and send again.")
	case errors.Is(err, provider.ErrServiceUnavailable):
		fmt.Println("The model service is unavailable right now. Try again shortly.")
	case errors.Is(err, provider.ErrInvalidRequest):
		fmt.Printf("The provider rejected the request: %v\n", err)
	default:
		fmt.Printf("Completion failed: %v\n", err)
	}
}

// dispatch handles a slash command. It returns true when the shell should
// exit.
func (s *shell) dispatch(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		s.persist()
		return true
	case "/help":
		s.printHelp()
	case "/personas":
		for _, p := range s.conv.Registry().List() {
			marker := "  "
			if p.Name == s.conv.ActivePersona.Name {
				marker = "* "
			}
			fmt.Printf("%s%s — %s\n", marker, p.Name, p.DisplayLabel)
		}
	case "/persona":
		if arg == "" {
			fmt.Printf("Active persona: %s\n", s.conv.ActivePersona.DisplayLabel)
			return false
		}
		if err := s.conv.SwitchPersona(arg); err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Printf("Persona switched to %s for future replies; history kept.\n", s.conv.ActivePersona.DisplayLabel)
		s.persist()
	case "/model":
		if arg == "" {
			fmt.Printf("Model: %s\n", s.conv.Model)
			return false
		}
		s.conv.SetModel(arg)
		fmt.Printf("Model set to %s.\n", arg)
		s.persist()
	case "/temp":
		t, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Printf("usage: /temp <%.1f-%.1f>\n", chat.MinTemperature, chat.MaxTemperature)
			return false
		}
		if err := s.conv.SetTemperature(t); err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Printf("Temperature set to %.2f.\n", t)
		s.persist()
	case "/clear":
		s.conv.Clear()
		if s.cfg.Persist {
			if err := memory.Remove(s.cfg.SnapshotPath()); err != nil {
				logger.Warn("failed to remove snapshot", "err", err)
			}
		}
		fmt.Println("Chat cleared.")
	case "/history":
		s.renderHistory()
	case "/raw":
		b, err := memory.Export(s.conv, memory.FormatJSON)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Println(string(b))
	case "/save":
		if err := memory.Save(s.cfg.SnapshotPath(), s.conv); err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		fmt.Printf("Saved to %s.\n", s.cfg.SnapshotPath())
	case "/export":
		s.export(arg)
	default:
		fmt.Printf("Unknown command %s; try /help.\n", cmd)
	}
	return false
}

// export serializes the conversation and either prints it or writes it to
// the given path. The export adapter itself never touches disk.
func (s *shell) export(arg string) {
	format, path, _ := strings.Cut(arg, " ")
	if format == "" {
		format = memory.FormatJSON
	}
	out, err := memory.Export(s.conv, format)
	if err != nil {
		if errors.Is(err, memory.ErrUnsupportedFormat) {
			fmt.Println("usage: /export text|json [path]")
			return
		}
		fmt.Printf("error: %v\n", err)
		return
	}
	path = strings.TrimSpace(path)
	if path == "" {
		fmt.Print(string(out))
		return
	}
	if err := fsops.WriteFileAtomic(path, out); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("Exported %s to %s.\n", format, path)
}

func (s *shell) renderHistory() {
	if len(s.conv.History) == 0 {
		fmt.Println("No messages yet. Type something to start!")
		return
	}
	for _, m := range s.conv.History {
		name := "You"
		color := "94"
		if m.Role == chat.RoleAssistant {
			name = s.conv.ActivePersona.DisplayLabel
			color = "93"
		}
		fmt.Printf("[%sm%s[0m: %s\n", color, name, m.Content)
	}
}

func (s *shell) printHelp() {
	fmt.Print(`Commands:
  /personas            list personas
  /persona <name>      switch persona (future replies only)
  /model <name>        set model
  /temp <value>        set temperature
  /history             show the conversation
  /clear               clear history (and the snapshot file)
  /export text|json [path]   export the transcript
  /save                write the snapshot now
  /raw                 dump the raw snapshot JSON
  /quit                exit
Example prompts: "Roast me gently for forgetting my keys.",
"Write a short Shakespearean insult.", "Convert 'I love pizza' into emojis."
`)
}

// persist writes the snapshot when persistence is enabled. Failures are
// warnings; the in-memory conversation is the source of truth.
func (s *shell) persist() {
	if !s.cfg.Persist {
		return
	}
	if err := memory.Save(s.cfg.SnapshotPath(), s.conv); err != nil {
		logger.Warn("failed to save conversation", "err", err)
	}
}
