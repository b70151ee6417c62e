package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TelmenBay/leetlog/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard and category scores to an .xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		views, err := a.Journal.Dashboard(ctx, a.Config.User)
		if err != nil {
			return err
		}
		sum, err := a.Journal.Analytics(ctx, a.Config.User)
		if err != nil {
			return err
		}
		if err := export.WriteXLSX(out, views, sum); err != nil {
			return err
		}
		fmt.Printf("Wrote %d problem(s) to %s\n", len(views), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "leetlog.xlsx", "Output file")
}
