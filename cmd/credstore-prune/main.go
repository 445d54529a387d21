// Command credstore-prune deletes stored auth tokens whose exp claim has
// passed. With -all it deletes every stored token.
//
// Usage:
//
//	credstore-prune [-config path] [-all]
//
// Reads the same configuration as ecowallet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore"
	"github.com/heartmarshall/ecowallet-client/internal/app"
	"github.com/heartmarshall/ecowallet-client/internal/auth"
	"github.com/heartmarshall/ecowallet-client/internal/config"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

func main() {
	configPath := flag.String("config", "", "config file")
	all := flag.Bool("all", false, "delete every stored token, expired or not")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	creds, err := app.OpenCredentials(ctx, cfg.Credentials, app.NewLogger(cfg.Log))
	if err != nil {
		log.Fatalf("open credential store: %v", err)
	}
	defer creds.Close()

	n, err := prune(ctx, creds, *all, time.Now(), os.Stdout)
	if err != nil {
		log.Fatalf("prune tokens: %v", err)
	}

	fmt.Printf("Deleted %d stored token(s).\n", n)
}

// prune deletes the role tokens that are expired at now, or all of them when
// all is set. Opaque tokens without an exp claim are kept unless all is set.
func prune(ctx context.Context, creds credstore.Store, all bool, now time.Time, w io.Writer) (int, error) {
	var stale []string
	for _, role := range domain.Roles() {
		key := role.TokenKey()
		token, err := creds.Get(ctx, key)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", key, err)
		}

		exp := auth.ExpiresAt(token)
		switch {
		case all:
		case exp != nil && exp.Before(now):
		default:
			continue
		}

		fmt.Fprintf(w, "%s %s expires=%s\n", key, auth.Fingerprint(token), formatExpiry(exp))
		stale = append(stale, key)
	}

	if len(stale) == 0 {
		return 0, nil
	}
	if err := creds.Delete(ctx, stale...); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func formatExpiry(exp *time.Time) string {
	if exp == nil {
		return "none"
	}
	return exp.UTC().Format(time.RFC3339)
}
