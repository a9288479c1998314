package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Replace the saved map with an empty one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			a.session.Reset()
			if err := a.session.Save(context.Background()); err != nil {
				return err
			}
			Good.Println("Cleared")
			Subtle.Printf("store: %s\n", a.cfg.Store.Backend)
			return nil
		},
	}
}
