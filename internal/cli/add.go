package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lhvu/memctl/internal/ingest"
	"github.com/lhvu/memctl/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Save a memory",
		Long:  "Save one memory. Content can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("type", "T", "", "Content type: note, conversation, reflection, idea, article, log (default note)")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().Float64P("score", "s", 0, "Importance score in [0,1] (omitted when not set)")
	cmd.Flags().StringP("person", "p", "", "Person this memory is about (adds the person tag)")
	cmd.Flags().String("source", "cli", "Origin recorded in metadata.source")
	cmd.Flags().String("log-type", "", "metadata.type for log entries (e.g. expense, todo)")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	contentType, _ := cmd.Flags().GetString("type")
	tagsStr, _ := cmd.Flags().GetString("tags")
	person, _ := cmd.Flags().GetString("person")
	source, _ := cmd.Flags().GetString("source")
	logType, _ := cmd.Flags().GetString("log-type")

	// Content: positional arg first, then check stdin
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	var tags []string
	if tagsStr != "" {
		for _, t := range strings.Split(tagsStr, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags = append(tags, t)
			}
		}
	}

	req := model.MemoryCreateRequest{
		RawText:     content,
		ContentType: contentType,
		Metadata: model.Metadata{
			Source: source,
			Tags:   tags,
			Type:   logType,
		},
	}
	if cmd.Flags().Changed("score") {
		score, _ := cmd.Flags().GetFloat64("score")
		req.ImportanceScore = &score
	}
	if person != "" {
		ingest.ApplyPerson(&req, person)
	}

	normalized, err := ingest.NormalizeBatch([]model.MemoryCreateRequest{req})
	if err != nil {
		exitErr("add", err)
	}

	mem, err := newClient().SaveMemory(cmd.Context(), normalized[0])
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.MarshalIndent(mem, "", "  ")
	fmt.Println(string(b))
}
