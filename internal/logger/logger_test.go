package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestLogger points the logger at a temp file and resets it afterwards.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	logPath := filepath.Join(t.TempDir(), "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestSetDebug(t *testing.T) {
	logPath := setupTestLogger(t)
	log := WithComponent("test")

	log.Debug("hidden-debug-marker")
	log.Info("visible-info-marker")

	SetDebug(true)
	// Loggers handed out earlier follow the level change
	log.Debug("late-debug-marker")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden-debug-marker") {
		t.Error("debug message should not be written at info level")
	}
	for _, want := range []string{"visible-info-marker", "late-debug-marker"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q, got:\n%s", want, content)
		}
	}
}

func TestSetLevel_Warn(t *testing.T) {
	logPath := setupTestLogger(t)
	SetLevel(slog.LevelWarn)

	log := WithComponent("test")
	log.Info("info-marker")
	log.Warn("warn-marker")

	content := readLog(t, logPath)
	if strings.Contains(content, "info-marker") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(content, "warn-marker") {
		t.Error("warn should be written at warn level")
	}
}

func TestWithComponent(t *testing.T) {
	logPath := setupTestLogger(t)

	log := WithComponent("backend")
	log.Info("request sent", "path", "/rest/v1/messages")

	content := readLog(t, logPath)
	if !strings.Contains(content, "component=backend") {
		t.Errorf("log should contain component attribute, got:\n%s", content)
	}
	if !strings.Contains(content, "path=/rest/v1/messages") {
		t.Errorf("log should contain path attribute, got:\n%s", content)
	}
}

func TestWithUser(t *testing.T) {
	logPath := setupTestLogger(t)

	WithUser("user-42").Info("signed in")

	if content := readLog(t, logPath); !strings.Contains(content, "userID=user-42") {
		t.Errorf("log should contain userID attribute, got:\n%s", content)
	}
}

func TestPath(t *testing.T) {
	logPath := setupTestLogger(t)

	if got := Path(); got != logPath {
		t.Errorf("Path() = %q, want %q", got, logPath)
	}
	Close()
	if got := Path(); got != "" {
		t.Errorf("Path() = %q after Close, want empty", got)
	}
}

func TestPathEnv(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	logPath := filepath.Join(t.TempDir(), "from-env.log")
	t.Setenv(PathEnv, logPath)

	WithComponent("test").Info("env-marker")

	if got := Path(); got != logPath {
		t.Errorf("Path() = %q, want %q", got, logPath)
	}
	if !strings.Contains(readLog(t, logPath), "env-marker") {
		t.Error("first log call should open the file named by the env var")
	}
}

func TestClose_DiscardsLaterLogs(t *testing.T) {
	logPath := setupTestLogger(t)

	Close()
	// Must not panic or reopen the file
	WithComponent("test").Info("after-close-marker")

	if strings.Contains(readLog(t, logPath), "after-close-marker") {
		t.Error("logs after Close should be discarded")
	}
	if Path() != "" {
		t.Error("Close should not be followed by a reopen")
	}
}

func TestInit_UnwritablePath(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); err == nil {
		t.Fatal("Init() should fail for a missing directory")
	}
	// Falls back to discarding
	WithComponent("test").Info("nowhere")
}

func TestLog_Concurrent(t *testing.T) {
	setupTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			log := WithComponent("worker")
			for j := 0; j < 100; j++ {
				log.Info("concurrent test", "worker", n, "i", j)
			}
		}(i)
	}
	wg.Wait()
}

func TestReset(t *testing.T) {
	tmpDir := t.TempDir()
	logPath1 := filepath.Join(tmpDir, "log1.log")
	Reset()
	t.Cleanup(Reset)
	if err := Init(logPath1); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	WithComponent("test").Info("message to log1")

	Reset()

	logPath2 := filepath.Join(tmpDir, "log2.log")
	if err := Init(logPath2); err != nil {
		t.Fatalf("Failed to reinit logger: %v", err)
	}
	WithComponent("test").Info("message to log2")

	content1 := readLog(t, logPath1)
	if !strings.Contains(content1, "message to log1") || strings.Contains(content1, "message to log2") {
		t.Errorf("log1 content wrong:\n%s", content1)
	}
	content2 := readLog(t, logPath2)
	if !strings.Contains(content2, "message to log2") || strings.Contains(content2, "message to log1") {
		t.Errorf("log2 content wrong:\n%s", content2)
	}
}

func TestClearLogsMatching(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "msgboard-debug.log")
	other := filepath.Join(dir, "msgboard-cli.log")
	unrelated := filepath.Join(dir, "keep.log")
	for _, p := range []string{primary, other, unrelated} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearLogsMatching(primary, filepath.Join(dir, "msgboard-*.log"))
	if err != nil {
		t.Fatalf("clearLogsMatching() error = %v", err)
	}
	if n != 2 {
		t.Errorf("removed %d files, want 2", n)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Errorf("unrelated log should remain: %v", err)
	}
}

func TestClearLogsMatching_NothingToRemove(t *testing.T) {
	dir := t.TempDir()
	n, err := clearLogsMatching(filepath.Join(dir, "missing.log"), filepath.Join(dir, "msgboard-*.log"))
	if err != nil {
		t.Fatalf("clearLogsMatching() error = %v", err)
	}
	if n != 0 {
		t.Errorf("removed %d files, want 0", n)
	}
}
