package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/internal/config"
	"github.com/junowatch/junowatch/internal/session"
	"golang.org/x/term"
)

func loginCmd(args []string) {
	cfg := loadOrDefaultConfig()
	serverURL := cfg.ServerURL
	if len(args) > 0 {
		serverURL = args[0]
	}

	client, err := api.NewClient(serverURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	email := promptLine("Email: ")
	if email == "" {
		fmt.Fprintln(os.Stderr, "Error: email is required")
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tok, err := client.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrAuth) {
			fmt.Fprintln(os.Stderr, "Error: invalid email or password")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}
	path, err := config.GetSessionPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sess := session.Session{
		ServerURL: serverURL,
		Email:     email,
		Token:     tok.AccessToken,
		SavedAt:   time.Now(),
	}
	if err := session.Save(path, GetVaultKey(), sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Signed in to %s as %s.\n", serverURL, email)
}

func logoutCmd() {
	path, err := config.GetSessionPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := session.Clear(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing session: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Signed out.")
}
