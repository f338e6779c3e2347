package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/msgboard/msgboard/internal/errors"
)

// clearServiceEnv blanks every service variable so the host environment
// cannot leak into a test.
func clearServiceEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvURL, EnvAnonKey, EnvTimeout, EnvRPS, EnvFallbackURL, EnvFallbackKey} {
		t.Setenv(k, "")
	}
}

func TestDir_HomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
}

func TestDir_DefaultUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("HOME", home)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if want := filepath.Join(home, ".msgboard"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())
	clearServiceEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GetTheme() != "" || cfg.GetLastEmail() != "" || cfg.GetNotificationsEnabled() {
		t.Errorf("Load() on missing file should return empty preferences, got %+v", cfg)
	}
	if cfg.Service.Timeout != DefaultTimeout {
		t.Errorf("Service.Timeout = %v, want %v", cfg.Service.Timeout, DefaultTimeout)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	clearServiceEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.SetTheme("nord")
	cfg.SetNotificationsEnabled(true)
	cfg.SetLastEmail("ada@example.com")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after save error = %v", err)
	}
	if loaded.GetTheme() != "nord" {
		t.Errorf("Theme = %q, want %q", loaded.GetTheme(), "nord")
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("NotificationsEnabled should round-trip")
	}
	if loaded.GetLastEmail() != "ada@example.com" {
		t.Errorf("LastEmail = %q, want %q", loaded.GetLastEmail(), "ada@example.com")
	}
}

func TestSave_DoesNotPersistCredentials(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	clearServiceEnv(t)
	t.Setenv(EnvAnonKey, "super-secret-anon-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "super-secret-anon-key") {
		t.Error("config file must not contain the anon key")
	}
}

func TestSave_NoPathIsNoop(t *testing.T) {
	cfg := &Config{Theme: "nord"}
	if err := cfg.Save(); err != nil {
		t.Errorf("Save() without a path should be a no-op, got %v", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	clearServiceEnv(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail on corrupt JSON")
	}
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("Load() error kind = %v, want %v", errors.GetKind(err), errors.KindConfig)
	}
}

func TestSetLastEmail_ReportsChange(t *testing.T) {
	cfg := &Config{}
	if !cfg.SetLastEmail("a@example.com") {
		t.Error("first SetLastEmail should report a change")
	}
	if cfg.SetLastEmail("a@example.com") {
		t.Error("same email should not report a change")
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := &Config{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetTheme("nord")
			cfg.SetNotificationsEnabled(true)
		}()
		go func() {
			defer wg.Done()
			_ = cfg.GetTheme()
			_ = cfg.GetNotificationsEnabled()
		}()
	}
	wg.Wait()
}

func TestLoadService_Defaults(t *testing.T) {
	clearServiceEnv(t)

	svc, err := LoadService()
	if err != nil {
		t.Fatalf("LoadService() error = %v", err)
	}
	if svc.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", svc.Timeout, DefaultTimeout)
	}
	if svc.RequestsPerSecond != DefaultRequestsPerSecond {
		t.Errorf("RequestsPerSecond = %v, want %v", svc.RequestsPerSecond, DefaultRequestsPerSecond)
	}
	if svc.Burst != DefaultBurst {
		t.Errorf("Burst = %d, want %d", svc.Burst, DefaultBurst)
	}
}

func TestLoadService_FromEnv(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv(EnvURL, "https://demo.supabase.co/")
	t.Setenv(EnvAnonKey, "anon")
	t.Setenv(EnvTimeout, "2.5")
	t.Setenv(EnvRPS, "12")

	svc, err := LoadService()
	if err != nil {
		t.Fatalf("LoadService() error = %v", err)
	}
	if svc.URL != "https://demo.supabase.co" {
		t.Errorf("URL = %q, want trailing slash trimmed", svc.URL)
	}
	if svc.Timeout != 2500*time.Millisecond {
		t.Errorf("Timeout = %v, want 2.5s", svc.Timeout)
	}
	if svc.RequestsPerSecond != 12 {
		t.Errorf("RequestsPerSecond = %v, want 12", svc.RequestsPerSecond)
	}
}

func TestLoadService_FallbackNames(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv(EnvFallbackURL, "https://legacy.supabase.co")
	t.Setenv(EnvFallbackKey, "legacy-key")

	svc, err := LoadService()
	if err != nil {
		t.Fatalf("LoadService() error = %v", err)
	}
	if svc.URL != "https://legacy.supabase.co" || svc.AnonKey != "legacy-key" {
		t.Errorf("fallback env not used: %+v", svc)
	}
}

func TestLoadService_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad timeout", EnvTimeout, "soon"},
		{"bad rps", EnvRPS, "fast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearServiceEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := LoadService(); !errors.Is(err, errors.KindInvalid) {
				t.Errorf("LoadService() error = %v, want KindInvalid", err)
			}
		})
	}
}

func TestServiceConfig_Validate(t *testing.T) {
	valid := ServiceConfig{
		URL:               "https://demo.supabase.co",
		AnonKey:           "anon",
		Timeout:           time.Second,
		RequestsPerSecond: 1,
		Burst:             1,
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr bool
	}{
		{"valid", func(*ServiceConfig) {}, false},
		{"http allowed", func(s *ServiceConfig) { s.URL = "http://localhost:54321" }, false},
		{"missing url", func(s *ServiceConfig) { s.URL = "" }, true},
		{"non-http scheme", func(s *ServiceConfig) { s.URL = "ftp://demo" }, true},
		{"no host", func(s *ServiceConfig) { s.URL = "https://" }, true},
		{"missing key", func(s *ServiceConfig) { s.AnonKey = "" }, true},
		{"zero timeout", func(s *ServiceConfig) { s.Timeout = 0 }, true},
		{"negative rps", func(s *ServiceConfig) { s.RequestsPerSecond = -1 }, true},
		{"zero burst", func(s *ServiceConfig) { s.Burst = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	clearServiceEnv(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := EnvURL + "=https://fromfile.supabase.co\n" + EnvAnonKey + "=file-key\n"
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	// Unset so godotenv is allowed to populate them.
	os.Unsetenv(EnvURL)
	os.Unsetenv(EnvAnonKey)

	loaded, err := LoadEnvFiles(filepath.Join(dir, "missing.env"), envPath)
	if err != nil {
		t.Fatalf("LoadEnvFiles() error = %v", err)
	}
	if len(loaded) != 1 || loaded[0] != envPath {
		t.Errorf("loaded = %v, want [%s]", loaded, envPath)
	}

	svc, err := LoadService()
	if err != nil {
		t.Fatal(err)
	}
	if svc.URL != "https://fromfile.supabase.co" || svc.AnonKey != "file-key" {
		t.Errorf("env file values not applied: %+v", svc)
	}
}

func TestLoadEnvFiles_ExistingEnvWins(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv(EnvURL, "https://fromenv.supabase.co")
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte(EnvURL+"=https://fromfile.supabase.co\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadEnvFiles(envPath); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv(EnvURL); got != "https://fromenv.supabase.co" {
		t.Errorf("%s = %q, existing environment should win", EnvURL, got)
	}
}

func TestSave_ReplacesFileWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")
	cfg := &Config{}
	cfg.SetFilePath(path)

	for _, theme := range []string{"nord", "light"} {
		cfg.SetTheme(theme)
		if err := cfg.Save(); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	loaded, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile() error = %v", err)
	}
	if loaded.GetTheme() != "light" {
		t.Errorf("Theme = %q, want the last saved value", loaded.GetTheme())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should not remain, stat err = %v", err)
	}
}
