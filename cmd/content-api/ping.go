package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KOMKZ/go-yogan-content/application"
)

func newPingCmd(flags *application.AppFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "检查缓存与检索服务是否可用，不可用时以非 0 退出",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, flags)
			defer app.Shutdown(context.Background())

			if err := app.Setup(cmd.Context()); err != nil {
				return err
			}
			resp, err := app.Ping(cmd.Context())
			if resp != nil {
				out, _ := json.MarshalIndent(resp, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}
			return err
		},
	}
}
