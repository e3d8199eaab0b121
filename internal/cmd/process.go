package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/sawmill/internal/oracle"
	"github.com/crimson-sun/sawmill/internal/pipeline"
)

var (
	processNoOracle bool
	processMaxLogs  int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Classify unprocessed logs and grow the pattern library",
	Long: `Process picks unprocessed logs one at a time, classifies every non-blank
line against the pattern library, and asks the suggestion oracle for a
candidate pattern for each unmatched line. Accepted suggestions are stored
marked for review and cover later lines of the same run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := setup(false)
		if err != nil {
			return err
		}
		defer st.Close()

		var orc oracle.Oracle
		if !processNoOracle {
			orc = oracle.NewClient(cfg.Oracle.URL, cfg.Oracle.APIKey, cfg.Oracle.Model,
				oracle.WithTimeout(cfg.Oracle.Timeout))
		}

		p := &pipeline.Processor{
			Patterns:   st.Patterns(),
			Logs:       st.Logs(),
			Oracle:     orc,
			SampleSize: cfg.Process.SampleSize,
		}

		processed := 0
		for {
			if processMaxLogs > 0 && processed >= processMaxLogs {
				break
			}
			rep, ok, err := p.ProcessOne(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			processed++
			fmt.Printf("%s: %d lines, %d matched, %d unmatched, %d new patterns, %d oracle errors\n",
				rep.PacketName, rep.Lines, rep.Matched, rep.Unmatched, rep.Ingested, rep.OracleErrors)
		}
		fmt.Printf("processed %d logs\n", processed)
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&processNoOracle, "no-oracle", false, "classify only; skip suggestions for unmatched lines")
	processCmd.Flags().IntVar(&processMaxLogs, "max-logs", 0, "stop after this many logs (0 = all)")
	rootCmd.AddCommand(processCmd)
}
