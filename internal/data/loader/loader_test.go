package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"project.yaml", "project.yml", "project.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			p := model.DefaultProject("laundry")

			require.NoError(t, Save(path, p))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

			loaded, err := Load(path, Options{NoEnv: true})
			require.NoError(t, err)
			assert.Equal(t, p, loaded)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("project.toml", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadRejectsUnknownYAMLFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monitor:\n  num_recipients: 3\n"), 0644))

	_, err := Load(path, Options{NoEnv: true})
	assert.Error(t, err)
}

func TestLoadNameDefaultsToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monitor:\n  location: Garage\n"), 0644))

	p, err := Load(path, Options{NoEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "garage", p.Name)
	assert.Equal(t, "Garage", p.Monitor.Location)
	assert.Nil(t, p.Display)
}

func TestLoadAppliesSecrets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, Save(path, model.DefaultProject("laundry")))

	envFile := "CYD_WIFI_SSID=home-net\nCYD_WIFI_PASSWORD=from-dotenv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envFile), 0600))
	t.Setenv(EnvWiFiPassword, "from-process")
	t.Setenv(EnvTwilioAuthToken, "0123456789abcdef0123456789abcdef")

	p, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "home-net", p.Monitor.WiFi.SSID)
	assert.Equal(t, "from-process", p.Monitor.WiFi.Password)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", p.Monitor.SMS.AuthToken)

	p, err = Load(path, Options{NoEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "your_wifi_ssid", p.Monitor.WiFi.SSID)
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, Save(path, model.DefaultProject("laundry")))

	_, err := Load(path, Options{EnvFile: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestEncodeJSONIsStable(t *testing.T) {
	p := model.DefaultProject("laundry")
	first, err := Encode(p, FormatJSON)
	require.NoError(t, err)
	second, err := Encode(p, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
