package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("ALFANUMRIK_LANGUAGE=Hindi\nALFANUMRIK_REDIS_URL=redis://localhost:6379/2\n"), 0o600))

	// godotenv never overwrites variables that are already set.
	t.Setenv("ALFANUMRIK_LANGUAGE", "")
	os.Unsetenv("ALFANUMRIK_LANGUAGE")
	t.Setenv("ALFANUMRIK_REDIS_URL", "")
	os.Unsetenv("ALFANUMRIK_REDIS_URL")
	t.Setenv("ALFANUMRIK_SESSION", filepath.Join(dir, "session"))
	t.Setenv("ALFANUMRIK_LOG", "")

	cfg, err := Load(envFile, Overrides{DBPath: filepath.Join(dir, "db", "a.db"), LogMode: "dev"})
	require.NoError(t, err)

	assert.Equal(t, "Hindi", cfg.Language)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, filepath.Join(dir, "db", "a.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "session"), cfg.SessionPath)
	assert.DirExists(t, filepath.Join(dir, "db"))
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ALFANUMRIK_DB", filepath.Join(dir, "x.db"))
	t.Setenv("ALFANUMRIK_LANGUAGE", "")
	t.Setenv("ALFANUMRIK_LOG", "")
	t.Setenv("ALFANUMRIK_SESSION", "")
	t.Setenv("XDG_STATE_HOME", dir)

	cfg, err := Load(filepath.Join(dir, "nope.env"), Overrides{Language: "Tamil"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.db"), cfg.DBPath)
	assert.Equal(t, "Tamil", cfg.Language)
	assert.Equal(t, "quiet", cfg.LogMode)
	assert.Equal(t, filepath.Join(dir, "alfanumrik", "session"), cfg.SessionPath)
}
