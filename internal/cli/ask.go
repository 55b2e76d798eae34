package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lhvu/memctl/internal/history"
	"github.com/lhvu/memctl/internal/model"
	"github.com/lhvu/memctl/internal/reason"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask a one-shot reasoning query",
		Long: "Run one reasoning query against your memories. Modes:\n" +
			modeHelp(),
		Args: cobra.MinimumNArgs(1),
		Run:  runAsk,
	}

	cmd.Flags().StringP("mode", "m", model.ModeRecall, "Reasoning mode")
	cmd.Flags().StringP("type", "T", "", "Restrict retrieval to one content type")
	cmd.Flags().Float64("threshold", 0, "Similarity threshold in [0,1] (service default when not set)")

	RootCmd.AddCommand(cmd)
}

func modeHelp() string {
	var b strings.Builder
	for _, m := range model.Modes {
		fmt.Fprintf(&b, "  %-18s %s\n", m, model.ModeDescriptions[m])
	}
	return b.String()
}

func openHistory() *history.Store {
	store, err := history.NewStore(loadConfig().HistoryPath)
	if err != nil {
		exitErr("open history", err)
	}
	return store
}

func runAsk(cmd *cobra.Command, args []string) {
	mode, _ := cmd.Flags().GetString("mode")
	contentType, _ := cmd.Flags().GetString("type")
	query := strings.Join(args, " ")

	opts := reason.AskOptions{Mode: mode, ContentType: contentType}
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		opts.Threshold = &threshold
	}

	store := openHistory()
	defer store.Close()

	conv := reason.NewConversation(newClient())
	turn, err := conv.Ask(cmd.Context(), query, opts)

	// The local transcript keeps everything, error turns included.
	for _, t := range conv.Turns() {
		if _, aerr := store.Append(cmd.Context(), t); aerr != nil {
			fmt.Fprintf(os.Stderr, "warning: history not recorded: %v\n", aerr)
		}
	}
	if err != nil {
		exitErr("ask", err)
	}

	fmt.Println(turn.Text)
	printTurnMeta(turn)
}

func printTurnMeta(turn *reason.Turn) {
	meta := fmt.Sprintf("[%s] %d memories, %d tokens, %dms", turn.Mode, turn.Memories, turn.Tokens, turn.LatencyMs)
	if turn.External {
		meta += ", external knowledge"
	}
	fmt.Fprintln(os.Stderr, meta)
}
