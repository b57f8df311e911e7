package cmd

import (
	"fmt"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/browser"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/config"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the meal sheet in the browser",
	Long:  "Open the human-facing meal sheet (source.view_url, or the CSV export when unset) in the system browser.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagSource != "" {
			if err := cfg.SetSourceURL(flagSource); err != nil {
				return fmt.Errorf("invalid --source value: %w", err)
			}
		}
		if err := browser.Open(cfg.ViewURL()); err != nil {
			return fmt.Errorf("opening browser: %w", err)
		}
		return nil
	},
}
