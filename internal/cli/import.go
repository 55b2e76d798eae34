package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lhvu/memctl/internal/ingest"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Bulk-save memories from JSON",
		Long: "Bulk-save memories from JSON (stdin or file). Accepts a single record object " +
			"or an array of them. The whole batch is validated before anything is sent; " +
			"after that, each record is submitted independently and failures are counted, " +
			"not fatal.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			exitErr("read file", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
	}

	items, err := ingest.ParseBatch(data)
	if err != nil {
		exitErr("import", err)
	}
	normalized, err := ingest.NormalizeBatch(items)
	if err != nil {
		exitErr("import", err)
	}

	outcome := ingest.NewPipeline(newClient()).Run(cmd.Context(), normalized)

	b, _ := json.MarshalIndent(outcome, "", "  ")
	fmt.Println(string(b))

	if !outcome.OK() {
		os.Exit(1)
	}
}
