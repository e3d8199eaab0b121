package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/sawmill/internal/config"
	"github.com/crimson-sun/sawmill/internal/engine/embedding"
	"github.com/crimson-sun/sawmill/internal/logging"
	"github.com/crimson-sun/sawmill/internal/output"
	"github.com/crimson-sun/sawmill/internal/output/async"
	"github.com/crimson-sun/sawmill/internal/output/file"
	"github.com/crimson-sun/sawmill/internal/output/multi"
	"github.com/crimson-sun/sawmill/internal/output/stdout"
	"github.com/crimson-sun/sawmill/internal/output/webhook"
	"github.com/crimson-sun/sawmill/internal/pipeline"
	"github.com/crimson-sun/sawmill/internal/store"
)

var (
	embedFormat      string
	embedPath        string
	embedWebhookURL  string
	embedGlobalMatch bool
	embedAsync       bool
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Reduce every stored log to its per-utility error-count vector",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		format := embedFormat
		if format == "" {
			format = cfg.Output.Format
		}

		// Resolve the format before logging comes up: when stdout carries
		// the NDJSON stream, slog must land on stderr as JSON.
		usesStdout := format == "stdout" || format == "stdout+file"
		logging.Init(usesStdout, logging.ParseLevel(cfg.LogLevel))

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		out, err := buildOutput(cfg, format)
		if err != nil {
			return err
		}
		defer out.Close()

		var opts []embedding.Option
		if embedGlobalMatch {
			opts = append(opts, embedding.WithGlobalFirstMatch())
		}

		e := &pipeline.Embedder{
			Patterns:    st.Patterns(),
			Logs:        st.Logs(),
			Out:         out,
			ReducerOpts: opts,
		}

		rep, err := e.Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "embedded %d logs at dimension %d\n", rep.Logs, rep.Dimension)
		return nil
	},
}

// buildOutput constructs the sink for an embed run.
func buildOutput(cfg config.Config, format string) (output.Output, error) {
	var out output.Output
	switch format {
	case "stdout":
		out = stdout.New(cfg.Output.Legend, cfg.Output.Pretty)
	case "file":
		path := cfg.Output.Path
		if embedPath != "" {
			path = embedPath
		}
		var opts []file.Option
		if cfg.Output.Legend {
			opts = append(opts, file.WithLegend())
		}
		f, err := file.New(path, opts...)
		if err != nil {
			return nil, err
		}
		out = f
	case "webhook":
		url := cfg.Output.WebhookURL
		if embedWebhookURL != "" {
			url = embedWebhookURL
		}
		if url == "" {
			return nil, fmt.Errorf("webhook output requires a URL")
		}
		out = webhook.New(url)
	case "stdout+file":
		f, err := file.New(cfg.Output.Path)
		if err != nil {
			return nil, err
		}
		out = multi.New(stdout.New(cfg.Output.Legend, cfg.Output.Pretty), f)
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}

	if embedAsync {
		out = async.New(out)
	}
	return out, nil
}

func init() {
	embedCmd.Flags().StringVarP(&embedFormat, "output", "o", "", "output: stdout, file, webhook, stdout+file")
	embedCmd.Flags().StringVar(&embedPath, "path", "", "file output path (overrides config)")
	embedCmd.Flags().StringVar(&embedWebhookURL, "url", "", "webhook URL (overrides config)")
	embedCmd.Flags().BoolVar(&embedGlobalMatch, "global-first-match", false,
		"attribute each line to at most one utility (cross-utility first-match)")
	embedCmd.Flags().BoolVar(&embedAsync, "async", false, "buffer writes through an async wrapper")
	rootCmd.AddCommand(embedCmd)
}
