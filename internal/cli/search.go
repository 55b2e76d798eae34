package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lhvu/memctl/internal/search"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic search over memories",
		Long:  "Search memories by natural language. Ranking comes from the service as-is.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("type", "T", "", "Filter by content type")
	cmd.Flags().Float64("threshold", search.DefaultThreshold, "Similarity threshold in [0,1]")
	cmd.Flags().IntP("limit", "l", search.DefaultLimit, "Max results (1-100)")
	cmd.Flags().Bool("json", false, "Output raw JSON instead of text")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	contentType, _ := cmd.Flags().GetString("type")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	query := strings.Join(args, " ")

	configurator := search.NewConfigurator(newClient())
	resp, err := configurator.Search(cmd.Context(), query, search.Options{
		ContentType: contentType,
		Threshold:   &threshold,
		Limit:       limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if asJSON {
		b, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(b))
		return
	}
	search.Render(os.Stdout, resp)
}
