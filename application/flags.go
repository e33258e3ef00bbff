package application

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// AppFlags command line flags
type AppFlags struct {
	ConfigDir string
	Env       string
	Port      int
	Address   string
	Wait      time.Duration
}

// Register 注册到 FlagSet，默认值可由 {APP_NAME}_CONFIG_DIR 覆盖
func (f *AppFlags) Register(fs *pflag.FlagSet, appName, defaultConfigDir string) {
	envPrefix := EnvPrefix(appName)
	if dir := os.Getenv(envPrefix + "_CONFIG_DIR"); dir != "" {
		defaultConfigDir = dir
	}
	fs.StringVar(&f.ConfigDir, "config-dir", defaultConfigDir, "配置目录（"+envPrefix+"_CONFIG_DIR）")
	fs.StringVar(&f.Env, "env", "", "运行环境 dev/test/prod，决定加载 {env}.yaml")
	fs.IntVar(&f.Port, "port", 0, "服务端口，覆盖 api_server.port")
	fs.StringVar(&f.Address, "address", "", "监听地址，覆盖 api_server.host")
	fs.DurationVar(&f.Wait, "wait", 0, "启动时等待缓存与检索就绪的最长时间，覆盖 startup.wait_timeout")
}

// Bindings flag 名到配置 key 的映射，只有显式传入的 flag 才会覆盖配置
func (f *AppFlags) Bindings() map[string]string {
	return map[string]string{
		"port":    "api_server.port",
		"address": "api_server.host",
		"wait":    "startup.wait_timeout",
	}
}

// ApplyEnv exports --env as APP_ENV for config.GetEnv
func (f *AppFlags) ApplyEnv() {
	if f.Env != "" {
		_ = os.Setenv("APP_ENV", f.Env)
	}
}

// EnvPrefix content-api -> CONTENT_API
func EnvPrefix(appName string) string {
	return strings.ToUpper(strings.ReplaceAll(appName, "-", "_"))
}
