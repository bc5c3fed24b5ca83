package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/junowatch/junowatch/cmd"
	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/internal/config"
	"github.com/junowatch/junowatch/internal/livesync"
	"github.com/junowatch/junowatch/internal/logging"
	"github.com/junowatch/junowatch/internal/session"
	"github.com/junowatch/junowatch/tui"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && cmd.IsSubcommand(args[0]) {
		cmd.Execute(args)
		return
	}

	cfg := config.DefaultConfig()
	if path, err := config.GetConfigPath(); err == nil {
		if loaded, loadErr := config.LoadConfig(path); loadErr == nil {
			cfg = loaded
		}
	}

	// Flag overrides for TUI launches.
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--theme":
			if i+1 < len(args) {
				cfg.Theme = args[i+1]
				i++
			}
		case "--server":
			if i+1 < len(args) {
				cfg.ServerURL = args[i+1]
				i++
			}
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", args[i])
			os.Exit(1)
		}
	}

	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	closeLog := func() {}
	if logPath, err := config.GetLogPath(); err == nil {
		if c, setupErr := logging.Setup(logPath, cfg.LogLevel); setupErr == nil {
			closeLog = c
		}
	}
	defer closeLog()

	client, err := api.NewClient(cfg.ServerURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Restore the stored session, if any. A rejected token clears the vault
	// and lands on the login screen; a missing vault just starts at login.
	sess, vaultKey := restoreSession(cfg)
	email := ""
	if sess != nil {
		client.SetToken(sess.Token)
		email = sess.Email
	}

	var sync *livesync.Channel
	if wsURL, wsErr := livesync.URLFromServer(cfg.ServerURL); wsErr == nil {
		sync = livesync.NewChannel(wsURL)
		go sync.Run()
	}

	model := tui.NewAppModel(tui.AppParams{
		Config:        cfg,
		Client:        client,
		Sync:          sync,
		Email:         email,
		Authenticated: sess != nil,
		VaultKey:      vaultKey,
		Version:       cmd.Version,
		Build:         cmd.Build,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if sync != nil {
		sync.Stop()
	}
}

// restoreSession loads the encrypted session vault and verifies the token
// against the server. Failures are not fatal; a nil session means the app
// starts at the login screen.
func restoreSession(cfg *config.Config) (*session.Session, []byte) {
	sess, vaultKey, err := cmd.LoadSession()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			logging.L().Warn().Err(err).Msg("session restore failed")
		}
		return nil, vaultKey
	}
	if sess.ServerURL != cfg.ServerURL {
		// The stored session belongs to a different server.
		return nil, vaultKey
	}

	client, err := api.NewClient(sess.ServerURL)
	if err != nil {
		return nil, vaultKey
	}
	client.SetToken(sess.Token)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := client.Me(ctx); err != nil {
		if errors.Is(err, api.ErrAuth) {
			logging.L().Info().Msg("stored token rejected, clearing vault")
			if path, perr := config.GetSessionPath(); perr == nil {
				_ = session.Clear(path)
			}
		} else {
			logging.L().Warn().Err(err).Msg("session verification failed")
		}
		return nil, vaultKey
	}

	return sess, vaultKey
}
