package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envNames = []string{
	"BACKEND", "DATA_DIR", "STORAGE_KEY", "LOG_LEVEL",
	"S3_ENDPOINT", "S3_BUCKET", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_USE_PATH_STYLE", "S3_PREFIX",
	"REDIS_URL", "REDIS_PREFIX",
}

// isolate points HOME at a temp dir and clears every KANBO_ variable
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range envNames {
		t.Setenv(envPrefix+name, "")
	}
	return home
}

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "kanbo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Default(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend != "file" {
		t.Errorf("expected backend 'file', got %q", cfg.Backend)
	}
	if cfg.DataDir != filepath.Join(home, "kanbo") {
		t.Errorf("expected default data dir, got %q", cfg.DataDir)
	}
	if cfg.StorageKey != "kanbanBoardState" {
		t.Errorf("expected default storage key, got %q", cfg.StorageKey)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.LogLevel)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `{
  "backend": "bolt",
  "data_dir": "~/boards",
  "storage_key": "team",
  "s3": {"bucket": "ignored-unless-s3"}
}`)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend != "bolt" {
		t.Errorf("expected backend 'bolt', got %q", cfg.Backend)
	}
	if cfg.DataDir != filepath.Join(home, "boards") {
		t.Errorf("expected expanded data dir, got %q", cfg.DataDir)
	}
	if cfg.StorageKey != "team" {
		t.Errorf("expected storage key 'team', got %q", cfg.StorageKey)
	}
	if cfg.S3.Bucket != "ignored-unless-s3" {
		t.Errorf("expected s3 bucket from file, got %q", cfg.S3.Bucket)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `{not json`)

	if _, err := Load(CLIFlags{}); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestLoad_EnvVar(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `{"backend": "bolt"}`)

	t.Setenv("KANBO_BACKEND", "S3")
	t.Setenv("KANBO_S3_BUCKET", "boards")
	t.Setenv("KANBO_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("KANBO_S3_USE_PATH_STYLE", "true")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend != "s3" {
		t.Errorf("expected env to override file, got %q", cfg.Backend)
	}
	if cfg.S3.Bucket != "boards" || cfg.S3.Endpoint != "http://localhost:9000" || !cfg.S3.UsePathStyle {
		t.Errorf("unexpected s3 options %+v", cfg.S3)
	}

	opts := cfg.StorageOptions()
	if opts.Backend != "s3" || opts.S3.Bucket != "boards" || opts.Dir != cfg.DataDir {
		t.Errorf("unexpected storage options %+v", opts)
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	isolate(t)
	t.Setenv("KANBO_S3_USE_PATH_STYLE", "sometimes")

	if _, err := Load(CLIFlags{}); err == nil {
		t.Error("expected error for invalid bool")
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("KANBO_BACKEND", "bolt")
	t.Setenv("KANBO_DATA_DIR", "/tmp/env-dir")

	cfg, err := Load(CLIFlags{Backend: "file", DataDir: "/tmp/cli-dir"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.Backend != "file" {
		t.Errorf("expected backend 'file', got %q", cfg.Backend)
	}
	if cfg.DataDir != "/tmp/cli-dir" {
		t.Errorf("expected /tmp/cli-dir, got %q", cfg.DataDir)
	}
}

func TestLoad_Ephemeral(t *testing.T) {
	isolate(t)
	t.Setenv("KANBO_BACKEND", "bolt")

	cfg, err := Load(CLIFlags{Backend: "file", Ephemeral: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "memory" {
		t.Errorf("expected memory backend, got %q", cfg.Backend)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	isolate(t)
	// godotenv never overrides a variable that is already set, even to ""
	for _, name := range []string{"KANBO_BACKEND", "KANBO_REDIS_URL"} {
		os.Unsetenv(name)
		t.Cleanup(func() { os.Unsetenv(name) })
	}

	envFile := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(envFile, []byte("KANBO_BACKEND=redis\nKANBO_REDIS_URL=redis://localhost:6379/0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(CLIFlags{EnvFile: envFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "redis" || cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("expected redis from env file, got %q %q", cfg.Backend, cfg.Redis.URL)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	isolate(t)
	if _, err := Load(CLIFlags{EnvFile: filepath.Join(t.TempDir(), "nope.env")}); err == nil {
		t.Error("expected error for explicit missing env file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file", Config{Backend: "file", StorageKey: "k"}, false},
		{"memory", Config{Backend: "memory", StorageKey: "k"}, false},
		{"s3 without bucket", Config{Backend: "s3", StorageKey: "k"}, true},
		{"redis without url", Config{Backend: "redis", StorageKey: "k"}, true},
		{"unknown", Config{Backend: "etcd", StorageKey: "k"}, true},
		{"empty key", Config{Backend: "file"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(home, ".config", "kanbo", "config.json")
	settings, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	if settings.Backend != "file" || settings.StorageKey != "kanbanBoardState" {
		t.Errorf("unexpected defaults %+v", settings)
	}

	// existing files are left alone
	if err := os.WriteFile(path, []byte(`{"backend":"bolt"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureConfigFile(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"backend":"bolt"}` {
		t.Errorf("config file was overwritten: %s", data)
	}
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	cfg := &Config{DataDir: dir}
	if err := cfg.EnsureDataDir(); err != nil {
		t.Fatal(err)
	}
	if !fileExists(dir) {
		t.Error("expected data dir to exist")
	}
}
