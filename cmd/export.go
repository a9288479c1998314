package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the saved map as an image or JSON",
	}

	cmd.AddCommand(
		exportPNGCmd(),
		exportJSONCmd(),
	)

	return cmd
}

// loadSaved opens the app and loads the stored map, failing when there is none.
func loadSaved() (*app, error) {
	a, err := openApp(false)
	if err != nil {
		return nil, err
	}
	ok, err := a.session.Load(context.Background())
	if err != nil {
		a.Close()
		return nil, err
	}
	if !ok {
		a.Close()
		return nil, fmt.Errorf("nothing saved yet")
	}
	return a, nil
}

func exportPNGCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "png OUT",
		Short: "Render the saved map to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadSaved()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.ExportPNG(args[0]); err != nil {
				return err
			}
			Good.Printf("Exported %d bubbles to %s\n", a.session.Model.Len(), args[0])
			return nil
		},
	}
}

func exportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json [OUT]",
		Short: "Write the saved map as indented JSON to OUT or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadSaved()
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.session.ExportJSON()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(args[0], append(data, '\n'), 0o644); err != nil {
				return err
			}
			Good.Printf("Exported %d bubbles to %s\n", a.session.Model.Len(), args[0])
			return nil
		},
	}
}
