package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRotatingLogger(t *testing.T) {
	tempDir := t.TempDir()

	rl := NewRotatingLogger(tempDir, 1, 0)

	rl.mu.Lock()
	err := rl.doRotate(getWeekKey(time.Now()))
	rl.mu.Unlock()
	if err != nil {
		t.Fatalf("Failed to rotate: %v", err)
	}

	currentWeek := getWeekKey(time.Now())
	expectedFileName := filepath.Join(tempDir, "portal-"+currentWeek+".log")
	if _, statErr := os.Stat(expectedFileName); os.IsNotExist(statErr) {
		t.Errorf("Expected log file %s was not created", expectedFileName)
	}

	testMessage := "Test log message"
	_, err = rl.Write([]byte(testMessage))
	if err != nil {
		t.Fatalf("Failed to write to log: %v", err)
	}

	content, err := os.ReadFile(expectedFileName)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if !strings.Contains(string(content), testMessage) {
		t.Errorf("Log file does not contain test message: %s", string(content))
	}

	if err := rl.cleanupOldLogs(); err != nil {
		t.Fatalf("Failed to cleanup old logs: %v", err)
	}

	rl.cancel()
	close(rl.cleanupDone)
	if err := rl.Close(); err != nil {
		t.Fatalf("Failed to close logger: %v", err)
	}
}

func TestGetWeekKey(t *testing.T) {
	testTime := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	weekKey := getWeekKey(testTime)

	expected := "2026-W36"
	if weekKey != expected {
		t.Errorf("Expected week key %s, got %s", expected, weekKey)
	}
}

func TestRotatingLoggerSizeRotation(t *testing.T) {
	tempDir := t.TempDir()

	// Cap files at 64 bytes so a few writes force a size rotation
	rl := NewRotatingLogger(tempDir, 1, 64)

	rl.mu.Lock()
	if err := rl.doRotate(getWeekKey(time.Now())); err != nil {
		rl.mu.Unlock()
		t.Fatalf("Failed to rotate: %v", err)
	}
	rl.mu.Unlock()

	line := strings.Repeat("x", 40) + "\n"
	for i := 0; i < 4; i++ {
		if _, err := rl.Write([]byte(line)); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	currentWeek := getWeekKey(time.Now())
	sequenced := filepath.Join(tempDir, fmt.Sprintf("portal-%s_01.log", currentWeek))
	if _, err := os.Stat(sequenced); os.IsNotExist(err) {
		t.Errorf("Expected sequenced log file %s after size rotation", sequenced)
	}

	rl.cancel()
	close(rl.cleanupDone)
	rl.Close()
}

func TestCleanupOldLogs(t *testing.T) {
	tempDir := t.TempDir()

	oldFile := filepath.Join(tempDir, "portal-2024-W01.log")
	if err := os.WriteFile(oldFile, []byte("old"), 0666); err != nil {
		t.Fatalf("Failed to create old log file: %v", err)
	}
	oldTime := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(oldFile, oldTime, oldTime); err != nil {
		t.Fatalf("Failed to backdate old log file: %v", err)
	}

	unrelated := filepath.Join(tempDir, "keep.txt")
	if err := os.WriteFile(unrelated, []byte("keep"), 0666); err != nil {
		t.Fatalf("Failed to create unrelated file: %v", err)
	}
	if err := os.Chtimes(unrelated, oldTime, oldTime); err != nil {
		t.Fatalf("Failed to backdate unrelated file: %v", err)
	}

	rl := NewRotatingLogger(tempDir, 1, 0)
	if err := rl.cleanupOldLogs(); err != nil {
		t.Fatalf("Failed to cleanup old logs: %v", err)
	}

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Errorf("Expected old log file to be removed")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Errorf("Expected unrelated file to survive cleanup, got %v", err)
	}
}
