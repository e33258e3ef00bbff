package main

import (
	"github.com/spf13/cobra"

	"github.com/KOMKZ/go-yogan-content/application"
)

func newServeCmd(flags *application.AppFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅关闭",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newApp(cmd, flags).Run(cmd.Context())
		},
	}
}
