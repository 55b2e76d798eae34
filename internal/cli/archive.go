package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lhvu/memctl/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive or unarchive a memory",
		Args:  cobra.ExactArgs(1),
		Run:   runArchive,
	}

	cmd.Flags().Bool("undo", false, "Unarchive instead")
	cmd.Flags().Bool("exclude", false, "Also exclude from retrieval")

	RootCmd.AddCommand(cmd)
}

func runArchive(cmd *cobra.Command, args []string) {
	undo, _ := cmd.Flags().GetBool("undo")
	exclude, _ := cmd.Flags().GetBool("exclude")

	mem, err := newClient().ArchiveMemory(cmd.Context(), args[0], model.ArchiveRequest{
		IsArchived:           !undo,
		ExcludeFromRetrieval: exclude,
	})
	if err != nil {
		exitErr("archive", err)
	}

	b, _ := json.MarshalIndent(mem, "", "  ")
	fmt.Println(string(b))
}
