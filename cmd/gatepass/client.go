package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/aussiebroadwan/gatepass/pkg/qrx"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const requestTimeout = 30 * time.Second

// clientFlags are shared by every command that talks to a running server.
type clientFlags struct {
	server string
	token  string
}

func (f *clientFlags) register(fs *pflag.FlagSet) {
	server := os.Getenv("GATEPASS_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}
	fs.StringVarP(&f.server, "server", "s", server, "gatepass base URL (GATEPASS_SERVER)")
	fs.StringVar(&f.token, "token", os.Getenv("GATEPASS_TOKEN"), "station bearer token (GATEPASS_TOKEN)")
}

func (f *clientFlags) client() *gatepasssdk.Client {
	c := gatepasssdk.NewClient(f.server)
	c.Token = f.token
	return c
}

func runIssue(args []string) error {
	var cf clientFlags
	var name, out string

	fs := pflag.NewFlagSet("issue", pflag.ContinueOnError)
	cf.register(fs)
	fs.StringVarP(&name, "name", "n", "", "holder name printed on the invitation")
	fs.StringVarP(&out, "out", "o", "", "QR image path (defaults to invite_<name>_<time>.png)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if name == "" {
		return errors.New("--name is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	inv, err := cf.client().Issue(ctx, name)
	if err != nil {
		return err
	}
	if out == "" {
		out = qrx.Filename(inv.HolderName, time.Now())
	}
	if err := writeQR(inv.Code, out); err != nil {
		return err
	}

	fmt.Printf("%s\t%s\t%s\n", inv.Code, inv.HolderName, out)
	return nil
}

// guestList is the YAML document read by the import command:
//
//	guests:
//	  - name: Alice
//	  - name: Bob
type guestList struct {
	Guests []struct {
		Name string `yaml:"name"`
	} `yaml:"guests"`
}

func loadGuests(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list guestList
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(list.Guests) == 0 {
		return nil, fmt.Errorf("%s lists no guests", path)
	}

	names := make([]string, 0, len(list.Guests))
	for _, g := range list.Guests {
		names = append(names, g.Name)
	}
	return names, nil
}

func runImport(args []string) error {
	var cf clientFlags
	var guests, outDir string

	fs := pflag.NewFlagSet("import", pflag.ContinueOnError)
	cf.register(fs)
	fs.StringVarP(&guests, "guests", "g", "guests.yaml", "YAML guest list")
	fs.StringVar(&outDir, "out-dir", "invites", "directory for QR images")
	if err := fs.Parse(args); err != nil {
		return err
	}

	names, err := loadGuests(guests)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	invs, err := cf.client().IssueBatch(ctx, names)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, inv := range invs {
		path := filepath.Join(outDir, inv.Code+"_"+qrx.Filename(inv.HolderName, now))
		if err := writeQR(inv.Code, path); err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%s\n", inv.Code, inv.HolderName, path)
	}
	fmt.Fprintf(os.Stderr, "issued %d invitations\n", len(invs))
	return nil
}

func runRedeem(args []string) error {
	var cf clientFlags

	fs := pflag.NewFlagSet("redeem", pflag.ContinueOnError)
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one code")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	res, err := cf.client().Redeem(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Println(res.Message)
	if !res.Admitted() {
		os.Exit(3)
	}
	return nil
}

func runStats(args []string) error {
	var cf clientFlags

	fs := pflag.NewFlagSet("stats", pflag.ContinueOnError)
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	st, err := cf.client().Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("issued:    %d\nused:      %d\nremaining: %d\n", st.IssuedCount, st.UsedCount, st.Remaining)
	return nil
}

func writeQR(code, path string) error {
	png, err := qrx.PNG(code, qrx.DefaultSize)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}
