package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the local chat transcript",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max turns")
	cmd.Flags().Bool("clear", false, "Delete the local transcript")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	clear, _ := cmd.Flags().GetBool("clear")

	store := openHistory()
	defer store.Close()

	if clear {
		if err := store.Clear(cmd.Context()); err != nil {
			exitErr("history", err)
		}
		fmt.Println(`{"ok":true,"cleared":true}`)
		return
	}

	turns, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		exitErr("history", err)
	}
	if len(turns) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(turns, "", "  ")
	fmt.Println(string(b))
}
