package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	migrations, err := filepath.Abs("../../internal/database/migrations")
	require.NoError(t, err)
	body := fmt.Sprintf(`[database]
path = %q
migrations = %q

[log]
path = %q
level = "debug"
`, filepath.Join(dir, "showcase.db"), migrations, filepath.Join(dir, "showcase.log"))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestItemsCommands(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "--config", cfg, "items", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Spring trade sale")
	require.Contains(t, out, "Total: 9")

	out, err = execute(t, "--config", cfg, "items", "add", "assets/promo/autumn.png", "--title", "Autumn fair", "--link", "https://example.com/autumn")
	require.NoError(t, err)
	require.Contains(t, out, "Added ")

	out, err = execute(t, "--config", cfg, "items", "find", "autum", "fair")
	require.NoError(t, err)
	require.Contains(t, out, "Autumn fair")

	out, err = execute(t, "--config", cfg, "items", "remove", "autumn FAIR")
	require.NoError(t, err)
	require.Contains(t, out, "Removed ")

	_, err = execute(t, "--config", cfg, "items", "remove", "vendor")
	require.Error(t, err)

	out, err = execute(t, "--config", cfg, "items", "disable", "Globex Industrial")
	require.NoError(t, err)
	require.Contains(t, out, "Disabled ")
	out, err = execute(t, "--config", cfg, "items", "list", "--placement", "vendors")
	require.NoError(t, err)
	require.Contains(t, out, "Total: 2")
	out, err = execute(t, "--config", cfg, "items", "enable", "globex industrial")
	require.NoError(t, err)
	require.Contains(t, out, "Enabled ")

	out, err = execute(t, "--config", cfg, "items", "move", "Globex Industrial", "--to", "0")
	require.NoError(t, err)
	require.Contains(t, out, " to 0")

	out, err = execute(t, "--config", cfg, "items", "list", "--placement", "vendors")
	require.NoError(t, err)
	require.Contains(t, out, "Total: 3")
	require.Less(t, strings.Index(out, "Globex Industrial"), strings.Index(out, "Acme Supplies"))

	out, err = execute(t, "--config", cfg, "items", "export")
	require.NoError(t, err)
	require.Contains(t, out, "image: assets/vendors/acme.png")

	file := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(file, []byte("items:\n  - image: x.png\n    title: X\n"), 0o600))
	out, err = execute(t, "--config", cfg, "items", "import", file)
	require.NoError(t, err)
	require.Contains(t, out, "imported 1, skipped 0")

	out, err = execute(t, "--config", cfg, "items", "reset")
	require.NoError(t, err)
	require.Contains(t, out, "All promotions removed.")
}

func TestConfigShow(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := execute(t, "--config", cfg, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "carousel.interval    1.6s")
	require.Contains(t, out, "source.kind          db")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.toml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "interval_ms = 1600")

	_, err = execute(t, "--config", path, "config", "init")
	require.ErrorContains(t, err, "exists")

	_, err = execute(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
}
