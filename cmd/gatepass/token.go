package main

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/app"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
	"github.com/aussiebroadwan/gatepass/pkg/jwtx"
	"github.com/spf13/pflag"
)

func runToken(args []string) error {
	var subject string
	var scopes []string
	var ttl = jwtx.DefaultStationTokenTTL

	fs := pflag.NewFlagSet("token", pflag.ContinueOnError)
	fs.StringVar(&subject, "subject", "", "station name, e.g. door-1")
	fs.StringSliceVar(&scopes, "scope", []string{domain.ScopeRedeem}, "granted scopes")
	fs.DurationVar(&ttl, "ttl", ttl, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if subject == "" {
		return errors.New("--subject is required")
	}
	for _, s := range scopes {
		if !domain.IsKnownScope(s) {
			return fmt.Errorf("unknown scope %q", s)
		}
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if !cfg.AuthEnabled() {
		return errors.New("GATEPASS_SIGNING_KEY is not set")
	}

	signer, err := jwtx.NewHS256([]byte(cfg.SigningKey), cfg.Issuer)
	if err != nil {
		return err
	}
	tok, _, err := signer.Mint(subject, scopes, ttl)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
