package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe service liveness",
		Run:   runHealth,
	}

	RootCmd.AddCommand(cmd)
}

func runHealth(cmd *cobra.Command, args []string) {
	payload, err := newClient().Health(cmd.Context())
	if err != nil {
		exitErr("health", err)
	}

	b, _ := json.MarshalIndent(payload, "", "  ")
	fmt.Println(string(b))
}
