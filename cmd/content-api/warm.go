package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KOMKZ/go-yogan-content/application"
	"github.com/KOMKZ/go-yogan-content/logger"
)

func newWarmCmd(flags *application.AppFlags) *cobra.Command {
	var opts application.WarmOptions

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "预热影片与分类列表的前 N 页缓存",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, flags)
			defer app.Shutdown(context.Background())

			if err := app.Setup(cmd.Context()); err != nil {
				return err
			}
			svcs, err := app.Services()
			if err != nil {
				return err
			}

			res, err := application.NewWarmer(svcs, logger.GetLogger("warm")).Warm(cmd.Context(), opts)
			fmt.Fprintf(cmd.OutOrStdout(), "filled=%d empty=%d failed=%d\n", res.Filled, res.Empty, res.Failed)
			return err
		},
	}
	cmd.Flags().IntVar(&opts.Pages, "pages", 5, "每类列表预热的页数")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 50, "每页条数")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "并发数")
	return cmd
}
