package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"porch/internal/config"
	"porch/internal/storage"
	"porch/internal/todo"
)

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(args, &out, &errOut)
	return out.String() + errOut.String(), code
}

func seed(t *testing.T, configPath, payload string) {
	t.Helper()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	kv, err := storage.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	defer kv.Close()
	if err := kv.Set(cfg.StorageKey, payload); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestTasksEmpty(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	out, code := run(t, "--config", cfgPath, "tasks")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, out)
	}
	if !strings.Contains(out, "No tasks found") || !strings.Contains(out, "0 items left") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestTasksFilter(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	seed(t, cfgPath, `[{"id":1,"text":"Alpha","completed":false},{"id":2,"text":"Beta","completed":true}]`)

	out, code := run(t, "--config", cfgPath, "tasks", "--filter", "completed")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, out)
	}
	if strings.Contains(out, "Alpha") || !strings.Contains(out, "Beta") {
		t.Fatalf("completed filter wrong:\n%s", out)
	}
	if !strings.Contains(out, "1 item left") {
		t.Fatalf("count missing:\n%s", out)
	}
}

func TestTasksRejectsUnknownFilter(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	out, code := run(t, "--config", cfgPath, "tasks", "--filter", "done")
	if code != 1 || !strings.Contains(out, "unknown filter") {
		t.Fatalf("exit %d: %s", code, out)
	}
}

func TestContactInvalid(t *testing.T) {
	out, code := run(t, "contact", "--email", "a@b")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	for _, want := range []string{"name: Name is required", "email: Please enter a valid email address", "message: Message is required"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestContactValid(t *testing.T) {
	out, code := run(t, "contact", "--name", "Ada", "--email", "ada@example.com", "--message", "Hi")
	if code != 0 || !strings.Contains(out, "Form submitted successfully!") {
		t.Fatalf("exit %d: %s", code, out)
	}
}

func TestTasksReset(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	seed(t, cfgPath, `[{"id":1,"text":"Alpha","completed":false}]`)

	out, code := run(t, "--config", cfgPath, "tasks", "--reset")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, out)
	}
	if strings.Contains(out, "Alpha") || !strings.Contains(out, "No tasks found") {
		t.Fatalf("reset did not clear the list:\n%s", out)
	}

	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	kv, err := storage.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	defer kv.Close()
	if _, ok, _ := kv.Get(cfg.StorageKey); ok {
		t.Fatalf("stored key should be gone after reset")
	}
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestDefaultFilterAppliesOnlyToTasksCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	writeConfig(t, cfgPath, "default_filter = \"completed\"\n")
	seed(t, cfgPath, `[{"id":1,"text":"Alpha","completed":false},{"id":2,"text":"Beta","completed":true}]`)

	out, code := run(t, "--config", cfgPath, "tasks")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, out)
	}
	if strings.Contains(out, "Alpha") || !strings.Contains(out, "Beta") {
		t.Fatalf("default_filter not applied:\n%s", out)
	}

	app := &App{ConfigPath: cfgPath}
	s, err := app.open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if got := s.tasks().Filter(); got != todo.FilterAll {
		t.Fatalf("page store should start on all, got %v", got)
	}
}
