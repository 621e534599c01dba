package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageflow/pageflow"
	"github.com/pageflow/pageflow/config"
	"github.com/pageflow/pageflow/internal/logging"
)

func newConvertCommand() *cobra.Command {
	var (
		format     string
		configPath string
		pages      []int
		workers    int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "convert input.pdf output",
		Short: "Convert a PDF into a flowed document format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			opts := pageflow.DefaultOptions()
			if configPath != "" {
				var err error
				opts, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			log := logging.New(verbose)
			defer func() { _ = log.Sync() }()

			conv := pageflow.Open(input).WithOptions(opts).WithLogger(log)
			if len(pages) > 0 {
				conv = conv.Pages(pages...)
			}

			if format == "" {
				format = formatFromPath(output)
			}
			log.Info("converting document",
				zap.String("input", input),
				zap.String("output", output),
				zap.String("format", format))
			return conv.To(output, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: docx or markdown (default: from output extension)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML options file")
	cmd.Flags().IntSliceVarP(&pages, "pages", "p", nil, "1-indexed pages to convert (default: all)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "page-level parallelism (0 = one per CPU)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func formatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".docx"):
		return "docx"
	case strings.HasSuffix(path, ".md"), strings.HasSuffix(path, ".markdown"):
		return "markdown"
	default:
		return "docx"
	}
}
