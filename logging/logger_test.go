package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	config := LoggerConfig{
		Level:         LevelInfo,
		Format:        "json",
		Output:        &buf,
		IncludeSource: false,
		Component:     "test-component",
	}

	logger := NewLogger(config)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected log output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "test-component") {
		t.Errorf("Expected log output to contain component name, got: %s", output)
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, want %s", test.level, got, test.expected)
		}
	}
}

func TestNewLoggerDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelInfo, Output: &buf})
	logger.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected default text format to log the message, got: %s", buf.String())
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(LoggerConfig{
		Level:  LevelInfo,
		Format: "json",
		Output: &buf,
	})

	logger.Info("test json message", "key", "value")

	output := buf.String()

	var jsonData map[string]interface{}
	if err := json.Unmarshal([]byte(output), &jsonData); err != nil {
		t.Errorf("Output is not valid JSON: %v\nOutput: %s", err, output)
	}
	if jsonData["msg"] != "test json message" {
		t.Errorf("Expected message 'test json message', got: %v", jsonData["msg"])
	}
	if jsonData["key"] != "value" {
		t.Errorf("Expected key 'value', got: %v", jsonData["key"])
	}
}

func TestNewDebugLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:         LevelDebug,
		Format:        "text",
		Output:        &buf,
		IncludeSource: true,
	})

	logger.Debug("debug message")

	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("Expected debug message in output, got: %s", output)
	}
}

func TestLogger_ValidationMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LevelInfo,
		Format: "json",
		Output: &buf,
	})

	documentPath := "test.xml"
	schemaTitle := "docbook"
	duration := 100 * time.Millisecond

	logger.ValidationStart(documentPath, schemaTitle)
	output := buf.String()
	if !strings.Contains(output, "starting validation") {
		t.Errorf("Expected validation start message, got: %s", output)
	}
	buf.Reset()

	logger.ValidationComplete(documentPath, duration, 5, false)
	output = buf.String()
	if !strings.Contains(output, "validation completed") {
		t.Errorf("Expected validation complete message, got: %s", output)
	}
	buf.Reset()

	err := errors.New("invalid xpath")
	logger.ValidationError(documentPath, err)
	output = buf.String()
	if !strings.Contains(output, "validation fault") {
		t.Errorf("Expected validation fault message, got: %s", output)
	}
}

func TestLogger_SchemaCompileMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LevelDebug,
		Format: "json",
		Output: &buf,
	})

	schemaTitle := "docbook"
	duration := 50 * time.Millisecond

	logger.SchemaCompileStart(schemaTitle)
	output := buf.String()
	if !strings.Contains(output, "compiling schema") {
		t.Errorf("Expected schema compile start message, got: %s", output)
	}
	buf.Reset()

	logger.SchemaCompileComplete(schemaTitle, duration, 2)
	output = buf.String()
	if !strings.Contains(output, "schema compiled") {
		t.Errorf("Expected schema compiled message, got: %s", output)
	}
}
