// Package cli implements the memctl CLI commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lhvu/memctl/internal/api"
	"github.com/lhvu/memctl/internal/config"
)

var (
	baseURLFlag string
	timeoutFlag time.Duration
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Client for your personal memory service",
	Long:  "A CLI for capturing, searching, and reasoning over your personal memory store. Talks to the memory service over HTTP; stores nothing remotely itself.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&baseURLFlag, "base-url", "u", "", "Service base URL (default: $MEMCTL_BASE_URL or http://localhost:8000)")
	RootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Per-request timeout (default: $MEMCTL_TIMEOUT or 30s)")
}

func loadConfig() config.Config {
	// Distinguish --timeout 0 (disable the deadline) from the flag not
	// being set at all.
	var timeout *time.Duration
	if RootCmd.PersistentFlags().Changed("timeout") {
		timeout = &timeoutFlag
	}
	cfg, err := config.Load(baseURLFlag, timeout)
	if err != nil {
		exitErr("config", err)
	}
	return cfg
}

func newClient() *api.Client {
	cfg := loadConfig()
	return api.NewClient(cfg.BaseURL, cfg.Timeout)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
