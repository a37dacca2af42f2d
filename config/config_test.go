package config

import (
	"os"
	"testing"
)

func cleanupEnv() {
	vars := []string{
		"PORT", "ADDRESS", "ENV", "LOG_LEVEL", "LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE", "MAX_REQUEST_BODY", "MAX_HEADER_SIZE",
		"MONGO_URI", "MONGO_DB", "AI_API_KEY", "AI_ENDPOINT", "AI_MODEL",
		"AI_TIMEOUT_SECONDS",
	}
	for _, v := range vars {
		_ = os.Unsetenv(v)
	}
}

func TestLoadValidConfig(t *testing.T) {
	_ = os.Setenv("PORT", "8002")
	_ = os.Setenv("ADDRESS", "127.0.0.1")
	_ = os.Setenv("ENV", "dev")
	_ = os.Setenv("LOG_LEVEL", "info")
	_ = os.Setenv("MONGO_URI", "mongodb://127.0.0.1:27017")
	_ = os.Setenv("MONGO_DB", "portal_test")
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.MongoDB != "portal_test" {
		t.Errorf("Expected database portal_test, got %s", cfg.MongoDB)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://127.0.0.1:27017" {
		t.Errorf("Expected default mongo URI, got %s", cfg.MongoURI)
	}
	if cfg.AITimeoutSeconds != 20 {
		t.Errorf("Expected default AI timeout 20s, got %d", cfg.AITimeoutSeconds)
	}
	if cfg.AIConfigured() {
		t.Error("Expected AI to be unconfigured without AI_API_KEY")
	}
}

func TestAIConfigured(t *testing.T) {
	cleanupEnv()
	_ = os.Setenv("AI_API_KEY", "test-key")
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !cfg.AIConfigured() {
		t.Error("Expected AI to be configured with AI_API_KEY set")
	}
}

func TestInvalidPort(t *testing.T) {
	testCases := []string{"abc", "0", "65536", "80"}

	for _, port := range testCases {
		cleanupEnv()
		_ = os.Setenv("PORT", port)

		if _, err := Load(); err == nil {
			t.Errorf("Expected error for port %s, got nil", port)
		}
	}
	cleanupEnv()
}

func TestInvalidMongoURI(t *testing.T) {
	testCases := []string{"postgres://localhost", "localhost:27017", "   "}

	for _, uri := range testCases {
		cleanupEnv()
		_ = os.Setenv("MONGO_URI", uri)

		if _, err := Load(); err == nil {
			t.Errorf("Expected error for mongo URI %q, got nil", uri)
		}
	}
	cleanupEnv()
}

func TestInvalidAIEndpoint(t *testing.T) {
	testCases := []string{"ftp://api.example.com", "not a url at all\x00"}

	for _, endpoint := range testCases {
		cleanupEnv()
		_ = os.Setenv("AI_ENDPOINT", endpoint)

		if _, err := Load(); err == nil {
			t.Errorf("Expected error for AI endpoint %q, got nil", endpoint)
		}
	}
	cleanupEnv()
}

func TestInvalidAITimeout(t *testing.T) {
	testCases := []string{"0", "121", "-5"}

	for _, timeout := range testCases {
		cleanupEnv()
		_ = os.Setenv("AI_TIMEOUT_SECONDS", timeout)

		if _, err := Load(); err == nil {
			t.Errorf("Expected error for AI timeout %s, got nil", timeout)
		}
	}
	cleanupEnv()
}

func TestInvalidEnv(t *testing.T) {
	cleanupEnv()
	_ = os.Setenv("ENV", "invalid")
	defer cleanupEnv()

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid env, got nil")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	cleanupEnv()
	_ = os.Setenv("LOG_LEVEL", "verbose")
	defer cleanupEnv()

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid log level, got nil")
	}
}
