package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRedactsSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Info("login", "password", "hunter2", "Authorization", "Bearer abc", "course_id", "c-1")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries: want=1 got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["password"] != "[REDACTED]" {
		t.Fatalf("password: want=[REDACTED] got=%v", fields["password"])
	}
	if fields["Authorization"] != "[REDACTED]" {
		t.Fatalf("Authorization: want=[REDACTED] got=%v", fields["Authorization"])
	}
	if fields["course_id"] != "c-1" {
		t.Fatalf("course_id: want=c-1 got=%v", fields["course_id"])
	}
}

func TestLoggerHashesUserIDs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core).With("service", "CourseService")

	log.Warn("denied", "user_id", "42", "mentor_user_id", "42")

	fields := logs.All()[0].ContextMap()
	got, _ := fields["user_id"].(string)
	if !strings.HasPrefix(got, "hash:") || len(got) != len("hash:")+12 {
		t.Fatalf("user_id: expected short hash, got=%q", got)
	}
	if fields["mentor_user_id"] != got {
		t.Fatalf("mentor_user_id: same input must hash identically, got=%v want=%v", fields["mentor_user_id"], got)
	}
	if fields["service"] != "CourseService" {
		t.Fatalf("service: want=CourseService got=%v", fields["service"])
	}
}

func TestLoggerRedactsJWTShapedValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Debug("header", "value", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig")

	if v := logs.All()[0].ContextMap()["value"]; v != "[REDACTED]" {
		t.Fatalf("value: want=[REDACTED] got=%v", v)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"production", "test", "development", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.Sync()
	}
}
