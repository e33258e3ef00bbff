package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KOMKZ/go-yogan-content/application"
)

// newWaitCmd 容器编排中作为前置步骤，后端就绪后以 0 退出
func newWaitCmd(flags *application.AppFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "wait",
		Short: "以指数退避等待缓存与检索就绪（--wait 指定最长时间）",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := newApp(cmd, flags)
			defer app.Shutdown(context.Background())

			if err := app.Setup(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "backends ready")
			return nil
		},
	}
}
