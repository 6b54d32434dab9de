package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tesso57/myshelf/internal/application/settings"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))

	configPath := filepath.Join(tmpDir, "config.yaml")
	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if store.Settings.Store.Driver != settings.DriverSQLite {
		t.Errorf("Expected default driver sqlite, got %q", store.Settings.Store.Driver)
	}
	if store.Settings.Store.PollInterval != 2*time.Second {
		t.Errorf("Expected default poll interval 2s, got %s", store.Settings.Store.PollInterval)
	}
	want := filepath.Join(tmpDir, "data", "myshelf", "shelf.db")
	if store.Settings.Store.Path != want {
		t.Errorf("Store.Path = %q, want %q", store.Settings.Store.Path, want)
	}
	if store.Settings.KeyMap.Event != "e" {
		t.Errorf("Expected default KeyMap.Event 'e', got %q", store.Settings.KeyMap.Event)
	}
	if store.Settings.Theme.Badge != "220" {
		t.Errorf("Expected default Theme.Badge '220', got %q", store.Settings.Theme.Badge)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file not created")
	}
	if store.Path() != configPath {
		t.Errorf("Path = %q", store.Path())
	}
}

func TestLoad_ReadsNestedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `store:
  driver: sqlite
  path: /tmp/shelf-test.db
  poll_interval: 500ms
session:
  member_id: m42
  member_name: Grace Hopper
keymap:
  up: w
theme:
  accent: "39"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Settings.Store.Path != "/tmp/shelf-test.db" {
		t.Errorf("Store.Path = %q", store.Settings.Store.Path)
	}
	if store.Settings.Store.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %s", store.Settings.Store.PollInterval)
	}
	if store.Settings.Session.MemberID != "m42" || store.Settings.Session.MemberName != "Grace Hopper" {
		t.Errorf("Session = %#v", store.Settings.Session)
	}
	if store.Settings.KeyMap.Up != "w" || store.Settings.KeyMap.Down != "j" {
		t.Errorf("KeyMap = %#v", store.Settings.KeyMap)
	}
	if store.Settings.Theme.Accent != "39" {
		t.Errorf("Theme.Accent = %q", store.Settings.Theme.Accent)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("MYSHELF_MEMBER_ID", "env-member")
	t.Setenv("MYSHELF_STORE_DRIVER", "POSTGRES")
	t.Setenv("MYSHELF_STORE_DSN", "postgres://localhost/shelf")
	t.Setenv("MYSHELF_STORE_POLL_INTERVAL", "5s")

	configPath := filepath.Join(tmpDir, "config.yaml")
	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Settings.Session.MemberID != "env-member" {
		t.Errorf("MemberID = %q", store.Settings.Session.MemberID)
	}
	if store.Settings.Store.DriverName() != settings.DriverPostgres {
		t.Errorf("Driver = %q", store.Settings.Store.Driver)
	}
	if store.Settings.Store.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %s", store.Settings.Store.PollInterval)
	}

	// Overrides are not written back.
	reloaded, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(reloaded), "env-member") {
		t.Error("environment override leaked into the config file")
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("store:\n  driver: postgres\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Fatal("expected error for postgres without dsn")
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("store:\n  driver: mongo\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoad_Corrupt(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	_ = os.WriteFile(configPath, []byte("invalid_yaml: ["), 0600)

	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for corrupt config read, got nil")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, nil, 0600); err != nil {
		t.Fatal(err)
	}
	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Settings.KeyMap.Quit != "q" {
		t.Errorf("Expected default quit key, got %q", store.Settings.KeyMap.Quit)
	}
}

func TestStore_SetMemberPersists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	store, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.SetMember(" m7 ", " Ada Lovelace "); err != nil {
		t.Fatalf("SetMember failed: %v", err)
	}
	if err := store.SetMember("", "x"); err == nil {
		t.Error("Expected error for empty member id")
	}

	store2, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if store2.Settings.Session.MemberID != "m7" || store2.Settings.Session.MemberName != "Ada Lovelace" {
		t.Errorf("Persistence failed: %#v", store2.Settings.Session)
	}
}

func TestLoadDotEnv_LocalOverridesBase(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"MYSHELF_MEMBER_ID", "MYSHELF_LOG_FILE"} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("MYSHELF_SESSION_SECRET", "from-shell")

	base := "MYSHELF_MEMBER_ID=base-member\nMYSHELF_LOG_FILE=shelf.log\nMYSHELF_SESSION_SECRET=from-dotenv\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(base), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env.local"), []byte("MYSHELF_MEMBER_ID=local-member\n"), 0600); err != nil {
		t.Fatal(err)
	}

	LoadDotEnv()

	if got := os.Getenv("MYSHELF_MEMBER_ID"); got != "local-member" {
		t.Errorf(".env.local should override .env, got %q", got)
	}
	if got := os.Getenv("MYSHELF_LOG_FILE"); got != "shelf.log" {
		t.Errorf(".env should fill unset variables, got %q", got)
	}
	if got := os.Getenv("MYSHELF_SESSION_SECRET"); got != "from-shell" {
		t.Errorf("environment should win over .env, got %q", got)
	}
}
