package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Inspect and resolve patterns awaiting human review",
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patterns marked as needing review",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := setup(false)
		if err != nil {
			return err
		}
		defer st.Close()

		patterns, err := st.Patterns().All()
		if err != nil {
			return err
		}

		pending := 0
		for _, p := range patterns {
			if !p.NeedReviewing {
				continue
			}
			pending++
			fmt.Printf("%d\t%s\terror=%v\t%s\n", p.ID, p.UtilityName, p.IsError, p.Regex)
		}
		fmt.Printf("%d of %d patterns need review\n", pending, len(patterns))
		return nil
	},
}

var reviewApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Mark a pattern as reviewed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid pattern id %q", args[0])
		}

		_, st, err := setup(false)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.Patterns().Get(id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("pattern %d not found", id)
		}
		if err := st.Patterns().MarkReviewed(id); err != nil {
			return err
		}
		fmt.Printf("pattern %d (%s) marked reviewed\n", id, p.UtilityName)
		return nil
	},
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a pattern (irreversible, allowed from either review state)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid pattern id %q", args[0])
		}

		_, st, err := setup(false)
		if err != nil {
			return err
		}
		defer st.Close()

		deleted, err := st.Patterns().Delete(id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("pattern %d not found", id)
		}
		fmt.Printf("pattern %d deleted\n", id)
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewListCmd, reviewApproveCmd, reviewDeleteCmd)
	rootCmd.AddCommand(reviewCmd)
}
