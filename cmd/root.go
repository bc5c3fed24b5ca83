package cmd

import (
	"fmt"
	"os"
)

// knownSubcommands is the set of CLI subcommands that bypass the TUI.
var knownSubcommands = map[string]bool{
	"login":   true,
	"logout":  true,
	"devices": true,
	"alerts":  true,
	"config":  true,
	"themes":  true,
	"version": true,
	"help":    true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Version and Build are stamped by the linker.
var (
	Version = "0.1.0"
	Build   = ""
)

// Execute dispatches to the appropriate CLI subcommand handler.
func Execute(args []string) {
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "login":
		loginCmd(args[1:])
	case "logout":
		logoutCmd()
	case "devices":
		devicesCmd(args[1:])
	case "alerts":
		alertsCmd(args[1:])
	case "config":
		configCmd(args[1:])
	case "themes":
		themesCmd()
	case "version":
		v := "junowatch v" + Version
		if Build != "" {
			v += " (" + Build + ")"
		}
		fmt.Println(v)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`junowatch - Juniper device monitoring client

Usage:
  junowatch                 Launch TUI
  junowatch --theme NAME    Launch with theme override
  junowatch login           Sign in and store the session
  junowatch logout          Clear the stored session
  junowatch devices <cmd>   Manage monitored devices
  junowatch alerts <cmd>    List and acknowledge alerts
  junowatch config <cmd>    Manage configuration
  junowatch themes          List available themes
  junowatch version         Show version
  junowatch help            Show this help

Device Commands:
  junowatch devices list           List devices with derived status
  junowatch devices add            Register a device (interactive)
  junowatch devices remove ID      Remove a device
  junowatch devices ping ID        Probe a device
  junowatch devices poll ID        Run checks now and print results

Alert Commands:
  junowatch alerts list            List alerts
  junowatch alerts ack ID          Acknowledge an alert

Config Commands:
  junowatch config path            Show config directory path
  junowatch config server URL      Set the server URL
  junowatch config theme NAME      Set default theme`)
}
