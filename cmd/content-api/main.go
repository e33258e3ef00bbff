// content-api 影视内容只读 API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KOMKZ/go-yogan-content/application"
)

const appName = "content-api"

// version is set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags application.AppFlags

	root := &cobra.Command{
		Use:           appName,
		Short:         "Film, genre and person read API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			flags.ApplyEnv()
		},
	}
	flags.Register(root.PersistentFlags(), appName, "./configs")

	root.AddCommand(
		newServeCmd(&flags),
		newWarmCmd(&flags),
		newPingCmd(&flags),
		newWaitCmd(&flags),
	)
	return root
}

// newApp 所有子命令共用同一套配置加载规则
func newApp(cmd *cobra.Command, flags *application.AppFlags) *application.App {
	return application.New(application.Options{
		ConfigDir:    flags.ConfigDir,
		EnvPrefix:    application.EnvPrefix(appName),
		Flags:        cmd.Flags(),
		FlagBindings: flags.Bindings(),
		Version:      version,
	})
}
