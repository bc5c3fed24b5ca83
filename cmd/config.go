package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/junowatch/junowatch/internal/config"
	"github.com/junowatch/junowatch/tui/styles"
)

func configCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: junowatch config <path|server|theme>")
		os.Exit(1)
	}

	switch args[0] {
	case "path":
		configPath()
	case "server":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: junowatch config server URL")
			os.Exit(1)
		}
		configSetServer(args[1])
	case "theme":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: junowatch config theme NAME")
			os.Exit(1)
		}
		configSetTheme(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: junowatch config <path|server|theme>")
		os.Exit(1)
	}
}

func configPath() {
	dir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(dir)
}

func configSetServer(serverURL string) {
	u, err := url.Parse(serverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fmt.Fprintf(os.Stderr, "Error: %q is not a valid http(s) URL\n", serverURL)
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	cfg.ServerURL = serverURL
	saveConfig(cfg)

	fmt.Printf("Server set to %q.\n", serverURL)
}

func configSetTheme(name string) {
	// Validate the theme name exists
	if styles.GetThemeByName(name) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'junowatch themes' to see available themes.")
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	cfg.Theme = name
	saveConfig(cfg)

	fmt.Printf("Default theme set to %q.\n", name)
}

func themesCmd() {
	for _, name := range styles.ListThemes() {
		fmt.Println(name)
	}
}

// loadOrDefaultConfig loads the config from disk, falling back to defaults.
func loadOrDefaultConfig() *config.Config {
	cfgDir, err := config.GetConfigDir()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(filepath.Join(cfgDir, "config.toml"))
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// saveConfig writes the config to disk, creating directories as needed.
func saveConfig(cfg *config.Config) {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
}
