package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLinksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "links [page-url]",
		Short: "List schedule file links on a listing page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			page := a.cfg.Fetch.PageURL
			if len(args) == 1 {
				page = args[0]
			}
			if page == "" {
				return fmt.Errorf("no page URL given and fetch.page_url is not configured")
			}

			links, err := a.fetch.Links(ctx, page)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range links {
				fmt.Fprintf(out, "%s\t%s\n", l.URL, l.Text)
			}
			return nil
		},
	}
}
