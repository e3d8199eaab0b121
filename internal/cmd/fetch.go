package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/sawmill/internal/connector"
	"github.com/crimson-sun/sawmill/internal/pipeline"
)

var (
	fetchProvider  string
	fetchEndpoint  string
	fetchArch      string
	fetchLimit     int
	fetchNoExtract bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download build logs from a source into the log store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := setup(false)
		if err != nil {
			return err
		}
		defer st.Close()

		provider := cfg.Source.Provider
		if fetchProvider != "" {
			provider = fetchProvider
		}
		ctor, err := connector.Get(provider)
		if err != nil {
			return err
		}

		srcCfg := connector.SourceConfig{
			Provider:     provider,
			Endpoint:     cfg.Source.Endpoint,
			Architecture: cfg.Source.Architecture,
		}
		if fetchEndpoint != "" {
			srcCfg.Endpoint = fetchEndpoint
		}
		if fetchArch != "" {
			srcCfg.Architecture = fetchArch
		}

		limit := cfg.Source.FetchLimit
		if fetchLimit > 0 {
			limit = fetchLimit
		}

		f := &pipeline.Fetcher{
			Source: ctor(),
			Config: srcCfg,
			Logs:   st.Logs(),
			// localdir trees already hold extracted error windows.
			Extract: provider != "localdir" && !fetchNoExtract,
			Window:  cfg.Source.Window,
			Limit:   limit,
		}

		rep, err := f.Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("listed %d, fetched %d, skipped %d, dropped %d\n",
			rep.Listed, rep.Fetched, rep.Skipped, rep.Dropped)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchProvider, "source", "", "source provider: beehive, localdir")
	fetchCmd.Flags().StringVar(&fetchEndpoint, "endpoint", "", "index URL or data directory")
	fetchCmd.Flags().StringVar(&fetchArch, "arch", "", "architecture (default from config)")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "max logs to fetch this run (0 = no cap)")
	fetchCmd.Flags().BoolVar(&fetchNoExtract, "no-extract", false, "store raw logs without error-window extraction")
	rootCmd.AddCommand(fetchCmd)
}
