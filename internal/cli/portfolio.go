package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func newPortfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Public portfolio commands",
	}

	cmd.AddCommand(newPortfolioShowCmd())
	cmd.AddCommand(newPortfolioDownloadCmd())

	return cmd
}

func newPortfolioShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <username>",
		Short: "Show a public portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Portfolio

			if err := client.Get("/api/v1/portfolios/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPortfolioDownloadCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "download <username>",
		Short: "Download a portfolio as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			if file == "" {
				file = username + "_portfolio.pdf"
			}

			data, err := client.Download("/api/v1/portfolios/" + url.PathEscape(username) + "/pdf")
			if err != nil {
				return err
			}

			if err := os.WriteFile(file, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Saved %s (%d bytes)", file, len(data)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Output file (default {username}_portfolio.pdf)")

	return cmd
}
