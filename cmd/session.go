package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/internal/config"
	"github.com/junowatch/junowatch/internal/session"
	"golang.org/x/term"
)

// GetVaultKey reads the vault passphrase from JUNOWATCH_VAULT_KEY, falling
// back to an empty passphrase. Vaults without a passphrase are supported.
func GetVaultKey() []byte {
	return []byte(os.Getenv("JUNOWATCH_VAULT_KEY"))
}

// promptVaultKey asks for the vault passphrase on the terminal.
func promptVaultKey() []byte {
	fmt.Fprint(os.Stderr, "Vault passphrase: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading passphrase: %v\n", err)
		os.Exit(1)
	}
	return pass
}

// LoadSession opens the stored session, trying the env/empty passphrase
// first and prompting only when that fails to decrypt.
func LoadSession() (*session.Session, []byte, error) {
	path, err := config.GetSessionPath()
	if err != nil {
		return nil, nil, err
	}

	key := GetVaultKey()
	sess, err := session.Load(path, key)
	if err == nil {
		return sess, key, nil
	}
	if errors.Is(err, session.ErrNoSession) {
		return nil, key, err
	}
	if !errors.Is(err, session.ErrDecrypt) {
		return nil, key, err
	}

	key = promptVaultKey()
	sess, err = session.Load(path, key)
	if err != nil {
		return nil, key, err
	}
	return sess, key, nil
}

// openClient builds an authenticated API client from the stored session.
// Exits with a sign-in hint when no session exists.
func openClient() *api.Client {
	sess, _, err := LoadSession()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			fmt.Fprintln(os.Stderr, "No session. Run 'junowatch login' first.")
		} else {
			fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		}
		os.Exit(1)
	}

	client, err := api.NewClient(sess.ServerURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	client.SetToken(sess.Token)
	return client
}

// promptLine reads one trimmed line from stdin after printing a label.
func promptLine(label string) string {
	fmt.Fprint(os.Stderr, label)
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
