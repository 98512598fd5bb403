package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jonathan/intelliresume/internal/export"
	"github.com/jonathan/intelliresume/internal/observability"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage previously generated resumes",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a history entry as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history to an Excel workbook",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

var (
	historyShowSummary bool
	historyClearYes    bool
	historyExportTo    string
)

func init() {
	historyShowCmd.Flags().BoolVar(&historyShowSummary, "summary", false, "Print a readable summary instead of JSON")
	historyClearCmd.Flags().BoolVarP(&historyClearYes, "yes", "y", false, "Confirm deleting every entry")
	historyExportCmd.Flags().StringVarP(&historyExportTo, "out", "o", "resume_history.xlsx", "Workbook path")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyClearCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	manager, closeFn, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	entries := manager.List()
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No history entries.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Name, e.Timestamp.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	manager, closeFn, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	entry, ok := manager.Get(args[0])
	if !ok {
		return fmt.Errorf("history entry not found: %s", args[0])
	}
	if historyShowSummary {
		observability.NewPrinter(cmd.OutOrStdout()).PrintHistoryEntry(&entry)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", entry)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	manager, closeFn, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	found, err := manager.Delete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("history entry not found: %s", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if !historyClearYes {
		return fmt.Errorf("refusing to clear the history without --yes")
	}

	manager, closeFn, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	if err := manager.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
	return nil
}

func runHistoryExport(cmd *cobra.Command, _ []string) error {
	manager, closeFn, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	f, err := os.Create(historyExportTo)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", historyExportTo, err)
	}

	entries := manager.List()
	if err := export.WriteHistory(f, entries); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", historyExportTo, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(entries), historyExportTo)
	return nil
}
