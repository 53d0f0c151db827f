package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/util"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported project file format")

// Environment variables that override secrets in the project file
const (
	EnvWiFiSSID         = "CYD_WIFI_SSID"
	EnvWiFiPassword     = "CYD_WIFI_PASSWORD"
	EnvTwilioAccountSID = "CYD_TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken  = "CYD_TWILIO_AUTH_TOKEN"
	EnvTwilioFromNumber = "CYD_TWILIO_FROM_NUMBER"
)

// Format is the on-disk encoding of a project
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from the file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Options controls how secrets are resolved while loading
type Options struct {
	// EnvFile is read before the process environment. Empty means a .env
	// file next to the project, if one exists.
	EnvFile string
	// NoEnv disables every environment override
	NoEnv bool
}

// Load reads a project file and applies secret overrides
func Load(path string, opts Options) (*model.Project, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}

	p, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if !opts.NoEnv && p.Monitor != nil {
		env, err := secretEnv(path, opts.EnvFile)
		if err != nil {
			return nil, err
		}
		applySecrets(p.Monitor, env)
	}

	util.LogDebug("loaded project", util.F("path", path), util.F("sections", strings.Join(p.Sections(), ",")))
	return p, nil
}

// Decode parses project bytes in the given format
func Decode(data []byte, format Format) (*model.Project, error) {
	p := &model.Project{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(p); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := sonic.Unmarshal(data, p); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return p, nil
}

// Encode serializes a project in the given format
func Encode(p *model.Project, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Save writes a project atomically. Projects hold credentials, so the
// file is owner-only.
func Save(path string, p *model.Project) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(p, format)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := util.WriteFileAtomic(path, data, 0600); err != nil {
		return err
	}
	util.LogInfo("saved project", util.F("path", path), util.F("format", string(format)))
	return nil
}

// secretEnv merges the env file with the process environment; process
// variables win
func secretEnv(projectPath, envFile string) (map[string]string, error) {
	env := make(map[string]string)

	explicit := envFile != ""
	if !explicit {
		envFile = filepath.Join(filepath.Dir(projectPath), ".env")
	}
	values, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		util.LogDebug("read env file", util.F("path", envFile), util.F("keys", len(values)))
		for k, v := range values {
			env[k] = v
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	for _, key := range []string{EnvWiFiSSID, EnvWiFiPassword, EnvTwilioAccountSID, EnvTwilioAuthToken, EnvTwilioFromNumber} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

func applySecrets(m *model.MonitorConfig, env map[string]string) {
	targets := map[string]*string{
		EnvWiFiSSID:         &m.WiFi.SSID,
		EnvWiFiPassword:     &m.WiFi.Password,
		EnvTwilioAccountSID: &m.SMS.AccountSID,
		EnvTwilioAuthToken:  &m.SMS.AuthToken,
		EnvTwilioFromNumber: &m.SMS.FromNumber,
	}
	for key, dst := range targets {
		if v, ok := env[key]; ok && v != "" {
			*dst = v
			util.LogDebug("secret overridden from environment", util.F("key", key))
		}
	}
}
