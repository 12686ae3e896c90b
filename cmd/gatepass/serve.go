package main

import (
	"github.com/aussiebroadwan/gatepass/internal/gatepass/app"
	"github.com/spf13/pflag"
)

func runServe(args []string) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "listen port (GATEPASS_PORT)")
	fs.StringVar(&cfg.DatabaseFile, "db", cfg.DatabaseFile, "SQLite database file (GATEPASS_DATABASE_FILE)")
	fs.StringVar(&cfg.CodePrefix, "prefix", cfg.CodePrefix, "code prefix (GATEPASS_CODE_PREFIX)")
	fs.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "base URL used in qrUrl links (GATEPASS_PUBLIC_URL)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	return application.Run()
}
