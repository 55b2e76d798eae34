package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lhvu/memctl/internal/model"
	"github.com/lhvu/memctl/internal/reason"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive reasoning chat",
		Long: "Chat with your memory store. One query at a time, answers in order.\n" +
			"Commands: /mode <MODE> to switch mode, /modes to list them, /quit to exit.",
		Run: runChat,
	}

	cmd.Flags().StringP("mode", "m", model.ModeRecall, "Starting reasoning mode")

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	mode, _ := cmd.Flags().GetString("mode")
	if !model.ValidMode(mode) {
		exitErr("chat", fmt.Errorf("unknown mode %q", mode))
	}

	store := openHistory()
	defer store.Close()

	conv := reason.NewConversation(newClient())

	fmt.Printf("memctl chat — mode %s (%s)\n", mode, model.ModeDescriptions[mode])
	fmt.Println("Type /modes for modes, /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Printf("\n%s> ", mode)
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "/exit":
			return
		case line == "/modes":
			fmt.Print(modeHelp())
			continue
		case strings.HasPrefix(line, "/mode"):
			arg := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(line, "/mode")))
			if !model.ValidMode(arg) {
				fmt.Fprintf(os.Stderr, "unknown mode %q\n", arg)
				continue
			}
			mode = arg
			fmt.Printf("mode -> %s (%s)\n", mode, model.ModeDescriptions[mode])
			continue
		}

		turn, err := conv.Ask(cmd.Context(), line, reason.AskOptions{Mode: mode})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			fmt.Println(turn.Text)
			printTurnMeta(turn)
		}

		// Persist the turns this exchange produced, error turns included.
		turns := conv.Turns()
		start := len(turns) - 2
		if start < 0 {
			start = 0
		}
		for _, t := range turns[start:] {
			if _, err := store.Append(cmd.Context(), t); err != nil {
				fmt.Fprintf(os.Stderr, "warning: history not recorded: %v\n", err)
			}
		}
	}
}
