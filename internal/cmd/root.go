package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"folioadmin/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "folioadmin",
	Short: "Terminal admin for the photography portfolio",
	Long: `folioadmin signs in to the portfolio admin area, shows the uploaded
photos as a grid and deletes a multi-selection in one bulk request.

Click tiles or use space to select, d to delete, r to reload.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&globalFlags.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/folioadmin/config.toml)")
	flags.StringVar(&globalFlags.baseURL, "base-url", "", "portfolio site base URL")
	flags.StringVar(&globalFlags.email, "email", "", "admin account email")
	flags.StringVar(&globalFlags.logFile, "log-file", "", "log file path")
	flags.StringVar(&globalFlags.logLevel, "log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	model := ui.NewModel(a.ctx, a.cfg, a.client, a.bus, a.logger)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}
	if a.cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	a.logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("UI exited with error", "error", err)
		return fmt.Errorf("run UI: %w", err)
	}
	a.logger.Info("UI exited normally")
	return nil
}
