package main

import (
	"fmt"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available resume templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for _, t := range types.Templates {
			marker := ""
			if string(t.ID) == appConfig.Template {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%-10s %s%s\n", t.ID, t.Name, marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
