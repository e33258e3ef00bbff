package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOMKZ/go-yogan-content/testutil"
)

// writeConfig miniredis 缓存 + 内存检索
func writeConfig(t *testing.T, redisAddr string) string {
	t.Helper()
	seeds := testutil.SeedFiles()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
app:
  name: content-api
logger:
  level: error
  enable_console: true
redis:
  main:
    addrs: ["%s"]
cache:
  engine: redis
  redis_instance: main
search:
  engine: memory
  seed:
    movies: %q
    genres: %q
    persons: %q
`, redisAddr, seeds["movies"], seeds["genres"], seeds["persons"])
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "warm", "ping", "wait"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config-dir"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("port"))
}

func TestWarmCmd(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := writeConfig(t, mr.Addr())

	out, err := execute(t, "warm", "--config-dir", dir, "--pages", "2", "--page-size", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "filled=4 empty=0 failed=0")
	assert.Len(t, mr.Keys(), 4)
}

func TestPingCmd(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := writeConfig(t, mr.Addr())

	out, err := execute(t, "ping", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "healthy"`)
}

func TestPingCmd_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := writeConfig(t, mr.Addr())
	mr.Close()

	_, err := execute(t, "ping", "--config-dir", dir)
	assert.Error(t, err)
}

func TestWaitCmd(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := writeConfig(t, mr.Addr())

	out, err := execute(t, "wait", "--config-dir", dir, "--wait", "2s")
	require.NoError(t, err)
	assert.Contains(t, out, "backends ready")
}
