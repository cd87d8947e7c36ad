package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAccountsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.yaml")
	content := `accounts:
  - id: "111"
    refresh_token: "rt-1"
    keyword: "opcal"
  - id: "222"
    refresh_token: "rt-2"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	accounts, err := LoadAccounts(path)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	require.Equal(t, "111", accounts[0].ID)
	require.Equal(t, "rt-1", accounts[0].RefreshToken)
	require.Equal(t, "opcal", accounts[0].Keyword)

	// keyword не задан — подставляется дефолт
	require.Equal(t, "222", accounts[1].ID)
	require.Equal(t, "opcal", accounts[1].Keyword)
}

func TestLoadAccountsEnvFallback(t *testing.T) {
	t.Setenv("ACCOUNT_ID_1", "111")
	t.Setenv("REFRESH_TOKEN_1", "rt-1")
	t.Setenv("ACCOUNT_ID_2", "222")
	t.Setenv("REFRESH_TOKEN_2", "rt-2")
	t.Setenv("ACCOUNT_KEYWORD_2", "opcal2")

	accounts, err := LoadAccounts(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "111", accounts[0].ID)
	require.Equal(t, "opcal", accounts[0].Keyword)
	require.Equal(t, "222", accounts[1].ID)
	require.Equal(t, "opcal2", accounts[1].Keyword)
}

func TestLoadAccountsEnvFallbackStopsAtGap(t *testing.T) {
	t.Setenv("ACCOUNT_ID_1", "111")
	t.Setenv("REFRESH_TOKEN_1", "rt-1")
	// пары 2 нет, пара 3 не должна подцепиться
	t.Setenv("ACCOUNT_ID_3", "333")
	t.Setenv("REFRESH_TOKEN_3", "rt-3")

	accounts, err := LoadAccounts(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, "111", accounts[0].ID)
}

func TestLoadAccountsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts: {not: a list}"), 0o644))

	_, err := LoadAccounts(path)
	require.Error(t, err)
}
