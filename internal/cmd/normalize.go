package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/sawmill/internal/hygiene"
)

var normalizeWhitelist string

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Case-fold utility names and quarantine off-whitelist ones",
	Long: `Normalize is a batch cleanup pass over the pattern store. Every utility
name is case-folded; names absent from the whitelist are renamed to
"unknown" and the pattern is sent back to review.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := hygiene.LoadWhitelist(normalizeWhitelist)
		if err != nil {
			return err
		}

		_, st, err := setup(false)
		if err != nil {
			return err
		}
		defer st.Close()

		rep, err := hygiene.Normalize(st.Patterns(), w)
		if err != nil {
			return err
		}

		fmt.Printf("lowercased %d, renamed %d to %s\n", rep.Lowercased, rep.Renamed, hygiene.UnknownUtility)
		for _, name := range rep.Invalid {
			fmt.Printf("  off-whitelist: %s\n", name)
		}
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeWhitelist, "whitelist", "", "path to whitelist file, one utility per line")
	_ = normalizeCmd.MarkFlagRequired("whitelist")
	rootCmd.AddCommand(normalizeCmd)
}
