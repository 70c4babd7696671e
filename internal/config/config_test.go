package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != "gemini-1.5-flash" {
		t.Errorf("Expected default model to be 'gemini-1.5-flash', got '%s'", cfg.DefaultModel)
	}
	if cfg.Variant != "classic" {
		t.Errorf("Expected default variant 'classic', got '%s'", cfg.Variant)
	}
	if cfg.Verbose {
		t.Errorf("Expected Verbose to be false, got %v", cfg.Verbose)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.Log.Level)
	}
	if cfg.Log.MaxSizeMB <= 0 {
		t.Errorf("Expected positive log size, got %d", cfg.Log.MaxSizeMB)
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("Expected markdown style 'dark', got '%s'", cfg.Markdown.Style)
	}
}

func TestGetConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != filepath.Join(tmpDir, ".geminichat") {
		t.Errorf("GetConfigDir() = %s", dir)
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, ".geminichat", "config.json") {
		t.Errorf("GetConfigPath() = %s", path)
	}
}

func TestGetLogPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path, err := GetLogPath(LogConfig{})
	if err != nil {
		t.Fatalf("GetLogPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, ".geminichat", "logs", "geminichat.log") {
		t.Errorf("GetLogPath() = %s", path)
	}

	custom := filepath.Join(tmpDir, "custom.log")
	path, _ = GetLogPath(LogConfig{File: custom})
	if path != custom {
		t.Errorf("GetLogPath() with override = %s, want %s", path, custom)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Directory does not exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Path is not a directory")
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("Directory permissions = %o, want 700", perm)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() without a file should return defaults, got %+v", cfg)
	}
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg := DefaultConfig()
	cfg.DefaultModel = "gemini-1.5-pro"
	cfg.Variant = "bold"
	cfg.Verbose = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	configPath := filepath.Join(tmpDir, ".geminichat", "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var saved Config
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Failed to parse saved config: %v", err)
	}
	if saved != cfg {
		t.Errorf("saved config = %+v, want %+v", saved, cfg)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("File permissions = %o, want 600", perm)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".geminichat")
	_ = os.MkdirAll(configDir, 0o700)

	partial := `{"variant": "markdown", "log": {"level": "debug"}}`
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(partial), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Variant != "markdown" {
		t.Errorf("Variant = %s, want markdown", cfg.Variant)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
	if cfg.DefaultModel != "gemini-1.5-flash" {
		t.Errorf("unset fields should keep defaults, DefaultModel = %s", cfg.DefaultModel)
	}
	if cfg.Log.MaxBackups != DefaultLogConfig().MaxBackups {
		t.Errorf("unset nested fields should keep defaults, MaxBackups = %d", cfg.Log.MaxBackups)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".geminichat")
	_ = os.MkdirAll(configDir, 0o700)

	invalidJSON := `{"invalid": json content`
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(invalidJSON), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("LoadConfig() with invalid JSON should return error")
	}

	// Should return default config on error
	if cfg.DefaultModel != "gemini-1.5-flash" {
		t.Errorf("DefaultModel = %s, want gemini-1.5-flash", cfg.DefaultModel)
	}
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		primary  string
		fallback string
		want     string
	}{
		{"primary wins", "key-a", "key-b", "key-a"},
		{"fallback used", "", "key-b", "key-b"},
		{"none set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_AI_KEY", tt.primary)
			t.Setenv("GEMINI_API_KEY", tt.fallback)

			if got := APIKey(); got != tt.want {
				t.Errorf("APIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadEnv_FromConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("GEMINI_AI_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	// godotenv never overrides variables that already exist, so clear it
	_ = os.Unsetenv("GEMINI_AI_KEY")

	configDir := filepath.Join(tmpDir, ".geminichat")
	_ = os.MkdirAll(configDir, 0o700)
	if err := os.WriteFile(filepath.Join(configDir, ".env"), []byte("GEMINI_AI_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	LoadEnv()

	if got := APIKey(); got != "from-dotenv" {
		t.Errorf("APIKey() after LoadEnv = %q, want %q", got, "from-dotenv")
	}
}

func TestAvailableModels(t *testing.T) {
	names := AvailableModels()

	if len(names) == 0 {
		t.Fatal("AvailableModels() returned empty list")
	}
	found := false
	for _, n := range names {
		if n == "gemini-1.5-flash" {
			found = true
		}
	}
	if !found {
		t.Errorf("default model missing from %v", names)
	}
}
