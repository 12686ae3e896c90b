// Command gatepass runs the invitation code service and talks to it.
package main

import (
	"fmt"
	"os"
)

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"serve", "run the HTTP service", runServe},
	{"issue", "issue one invitation and save its QR image", runIssue},
	{"import", "issue invitations for every guest in a YAML list", runImport},
	{"redeem", "validate a code by hand", runRedeem},
	{"stats", "print issued/used counts", runStats},
	{"token", "mint a station token from GATEPASS_SIGNING_KEY", runToken},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "gatepass %s: %v\n", name, err)
			os.Exit(1)
		}
		return
	}

	if name != "help" && name != "-h" && name != "--help" {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	}
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gatepass <command> [flags]")
	fmt.Fprintln(os.Stderr)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.name, c.usage)
	}
}
