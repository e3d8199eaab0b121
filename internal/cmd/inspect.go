package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	inspectPatterns bool
	inspectLogs     bool
	inspectFull     bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the contents of the pattern and log stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := setup(false)
		if err != nil {
			return err
		}
		defer st.Close()

		// With no table selected, show both.
		all := !inspectPatterns && !inspectLogs

		if all || inspectPatterns {
			patterns, err := st.Patterns().All()
			if err != nil {
				return err
			}
			fmt.Printf("patterns (%d):\n", len(patterns))
			for _, p := range patterns {
				fmt.Printf("  %d\t%s\terror=%v\treview=%v\t%s\n",
					p.ID, p.UtilityName, p.IsError, p.NeedReviewing, p.Regex)
			}
		}

		if all || inspectLogs {
			logs, err := st.Logs().All()
			if err != nil {
				return err
			}
			fmt.Printf("logs (%d):\n", len(logs))
			for _, l := range logs {
				fmt.Printf("  %d\t%s\t%s\t%s\terror=%v\tprocessed=%v\t%d bytes\n",
					l.ID, l.PacketName, l.Architecture, l.Date, l.Error, l.Processed, len(l.Log))
				if inspectFull {
					fmt.Println(l.Log)
				}
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectPatterns, "patterns", false, "dump only the pattern table")
	inspectCmd.Flags().BoolVar(&inspectLogs, "logs", false, "dump only the log table")
	inspectCmd.Flags().BoolVar(&inspectFull, "full", false, "include full log text, not just sizes")
	rootCmd.AddCommand(inspectCmd)
}
