package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bubblemap/internal/config"
	"bubblemap/internal/tui"
)

var version = "0.3.0"

var (
	Good   = color.New(color.FgGreen)
	Warn   = color.New(color.FgYellow)
	Bad    = color.New(color.FgRed)
	Subtle = color.New(color.FgHiBlack)
)

var (
	configPath   string
	storeBackend string
)

var rootCmd = &cobra.Command{
	Use:           "bubblemap",
	Short:         "bubblemap - mind maps in the terminal",
	Long:          "Draw bubbles, link them with curved connections, and keep the map in a file or a SQLite database.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		editor := tui.New(a.session, a.term, a.cfg, tui.WithLogger(a.logger))
		if a.cfg.UI.Autoload {
			if _, err := a.session.Load(context.Background()); err != nil {
				editor.Report(err)
			}
		}

		theme := a.cfg.UI.Theme
		if err := tui.Run(editor); err != nil {
			return err
		}
		if a.cfg.UI.Theme != theme {
			if err := rememberTheme(a.cfg.UI.Theme); err != nil {
				Warn.Printf("could not remember theme: %v\n", err)
			}
		}
		if a.session.Dirty() {
			Warn.Println("Quit with unsaved changes.")
		}
		return nil
	},
}

// rememberTheme rewrites only ui.theme in the config file, so flags such as
// --store stay one-off.
func rememberTheme(theme string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.UI.Theme = theme
	return config.Save(cfg, configPath)
}

func init() {
	rootCmd.SetVersionTemplate("bubblemap {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "store backend: file, sqlite or memory")

	rootCmd.AddCommand(
		exportCmd(),
		importCmd(),
		clearCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		Bad.Printf("bubblemap: %v\n", err)
		return err
	}
	return nil
}
