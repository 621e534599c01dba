package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageflow/pageflow/model"
	"github.com/pageflow/pageflow/stamp"
)

func newStampCommand() *cobra.Command {
	var (
		position  string
		fontSize  float64
		margin    float64
		startPage int
		format    string
		colorR    uint8
		colorG    uint8
		colorB    uint8
	)

	cmd := &cobra.Command{
		Use:   "stamp input.pdf output.pdf",
		Short: "Add page numbers to a PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := stamp.Config{
				Position:  stamp.Position(position),
				FontSize:  fontSize,
				Color:     model.Color{R: colorR, G: colorG, B: colorB},
				Margin:    margin,
				StartPage: startPage,
				Format:    format,
			}
			if !cfg.Position.Valid() {
				return fmt.Errorf("unknown position %q", position)
			}
			return stamp.File(args[0], args[1], cfg)
		},
	}

	defaults := stamp.DefaultConfig()
	cmd.Flags().StringVar(&position, "position", string(defaults.Position),
		"page number position: top_left, top_center, top_right, middle_left, middle_center, middle_right, bottom_left, bottom_center, bottom_right")
	cmd.Flags().Float64Var(&fontSize, "font-size", defaults.FontSize, "page number font size in points")
	cmd.Flags().Float64Var(&margin, "margin", defaults.Margin, "distance from page edge in points")
	cmd.Flags().IntVar(&startPage, "start-page", defaults.StartPage, "number assigned to the first page")
	cmd.Flags().StringVar(&format, "number-format", defaults.Format, "number template; {page} and {total} expand")
	cmd.Flags().Uint8Var(&colorR, "color-r", 0, "red component (0-255)")
	cmd.Flags().Uint8Var(&colorG, "color-g", 0, "green component (0-255)")
	cmd.Flags().Uint8Var(&colorB, "color-b", 0, "blue component (0-255)")

	return cmd
}
