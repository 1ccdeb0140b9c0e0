package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/limchang/cafe-test/internal/history"
)

// historyCmd groups the saved-order commands
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved orders",
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved orders, most recent first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	log := history.New(store)
	if err := log.Load(ctx); err != nil {
		return err
	}

	entries := log.List()
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved orders.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSAVED\tTITLE\tCOUNT\tMEMO")
	for _, e := range entries {
		saved := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.ID, saved, e.Title, e.TotalCount, e.Memo)
	}
	return w.Flush()
}
