package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/junowatch/junowatch/internal/alerts"
)

func alertsCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: junowatch alerts <list|ack>")
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		alertsList()
	case "ack":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: junowatch alerts ack ID")
			os.Exit(1)
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q is not an alert id\n", args[1])
			os.Exit(1)
		}
		alertsAck(id)
	default:
		fmt.Fprintf(os.Stderr, "Unknown alerts command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: junowatch alerts <list|ack>")
		os.Exit(1)
	}
}

func alertsList() {
	store := alerts.NewStore(openClient())
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	if err := store.List(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error listing alerts: %v\n", err)
		os.Exit(1)
	}
	items := store.Alerts()
	if len(items) == 0 {
		fmt.Println("No alerts.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEVERITY\tACK\tCREATED\tMESSAGE")
	for _, a := range items {
		ack := ""
		if a.Acknowledged {
			ack = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			a.ID, strings.ToUpper(a.Severity), ack,
			a.CreatedAt.Format(time.DateTime), a.Message)
	}
	w.Flush()
}

func alertsAck(id int) {
	store := alerts.NewStore(openClient())
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	if err := store.Acknowledge(ctx, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error acknowledging alert: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Acknowledged alert %d.\n", id)
}
