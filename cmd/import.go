package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the saved map with a JSON export (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			skipped, err := a.session.ImportJSON(data)
			if err != nil {
				return err
			}
			if err := a.session.Save(context.Background()); err != nil {
				return err
			}
			Good.Printf("Imported %d bubbles and %d connections\n",
				a.session.Model.Len(), a.session.Model.EdgeCount())
			if skipped > 0 {
				Warn.Printf("Skipped %d connections to unknown bubbles\n", skipped)
			}
			return nil
		},
	}
}
