package core

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerForwardsLevelsAndFields(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(obsCore))

	logger.Debug("debug msg", "k", "v")
	logger.Info("info msg", "operation", "create_group")
	logger.Warn("warn msg")
	logger.Error("error msg", "error", "boom")

	if logs.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", logs.Len())
	}
	entries := logs.All()
	if entries[1].Message != "info msg" || entries[1].Level != zapcore.InfoLevel {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
	fields := entries[1].ContextMap()
	if fields["operation"] != "create_group" {
		t.Fatalf("field not forwarded: %+v", fields)
	}
	if entries[3].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", entries[3].Level)
	}
}

func TestNewZapLoggerNil(t *testing.T) {
	logger := NewZapLogger(nil)
	logger.Info("must not panic")
}
