package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/internal/checks"
	"github.com/junowatch/junowatch/internal/health"
	"golang.org/x/term"
)

const cmdTimeout = 60 * time.Second

func devicesCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: junowatch devices <list|add|remove|ping|poll>")
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		devicesList()
	case "add":
		devicesAdd()
	case "remove":
		devicesRemove(requireID(args, "remove"))
	case "ping":
		devicesPing(requireID(args, "ping"))
	case "poll":
		devicesPoll(requireID(args, "poll"))
	default:
		fmt.Fprintf(os.Stderr, "Unknown devices command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: junowatch devices <list|add|remove|ping|poll>")
		os.Exit(1)
	}
}

func requireID(args []string, sub string) int {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: junowatch devices %s ID\n", sub)
		os.Exit(1)
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %q is not a device id\n", args[1])
		os.Exit(1)
	}
	return id
}

func devicesList() {
	client := openClient()
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	devices, err := client.Devices(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing devices: %v\n", err)
		os.Exit(1)
	}
	if len(devices) == 0 {
		fmt.Println("No devices registered.")
		return
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tHOSTNAME\tADDRESS\tSTATUS\tMODEL\tLAST CHECK")
	for _, d := range devices {
		status := health.Derive(d.LastOnline, now)
		seen := "never"
		if d.LastCheck != nil {
			seen = d.LastCheck.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\t%s\n",
			d.ID, d.Hostname, d.IPAddress, status.Icon(), status.Label(), d.Model, seen)
	}
	w.Flush()
}

func devicesAdd() {
	hostname := promptLine("Hostname: ")
	if hostname == "" {
		fmt.Fprintln(os.Stderr, "Error: hostname is required")
		os.Exit(1)
	}
	address := promptLine("IP address: ")
	if address == "" {
		fmt.Fprintln(os.Stderr, "Error: ip address is required")
		os.Exit(1)
	}
	port := 22
	if p := promptLine("SSH port [22]: "); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Error: %q is not a port\n", p)
			os.Exit(1)
		}
		port = n
	}
	username := promptLine("SSH username: ")

	var password string
	if username != "" {
		fmt.Fprint(os.Stderr, "SSH password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
		password = string(pw)
	}

	client := openClient()
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	d, err := client.CreateDevice(ctx, api.DeviceCreate{
		Hostname:    hostname,
		IPAddress:   address,
		SSHPort:     port,
		SSHUsername: username,
		SSHPassword: password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding device: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added device %d (%s).\n", d.ID, d.Hostname)
}

func devicesRemove(id int) {
	client := openClient()
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	if err := client.DeleteDevice(ctx, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing device: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed device %d.\n", id)
}

func devicesPing(id int) {
	client := openClient()
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	pr, err := client.Ping(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pinging device: %v\n", err)
		os.Exit(1)
	}
	if !pr.Online {
		fmt.Println("unreachable")
		os.Exit(1)
	}
	if pr.LatencyMS != nil {
		fmt.Printf("online (%.1f ms)\n", *pr.LatencyMS)
	} else {
		fmt.Println("online")
	}
}

func devicesPoll(id int) {
	client := openClient()
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	results, err := client.RunChecks(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error polling device: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Println("No checks recorded.")
		return
	}

	for _, c := range results {
		fmt.Printf("%s [%s] %s\n", c.Category, c.Status, c.Message)
		table, ok := checks.Normalize(c.Category, c.Details)
		if !ok {
			continue
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		printRow(w, table.Columns)
		for _, row := range table.Rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = cell.Text
			}
			printRow(w, cells)
		}
		w.Flush()
		fmt.Println()
	}
}

func printRow(w *tabwriter.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprintf(w, "  %s", c)
	}
	fmt.Fprintln(w)
}
