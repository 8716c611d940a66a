// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pxl

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/pxl/internal/cmdbuf"
)

func TestLoggerDefaultSilent(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)
	defer SetLogger(nil)

	Logger().Error("should not appear")
	if buf.Len() != 0 {
		t.Errorf("nil logger produced output: %q", buf.String())
	}
}

func TestOverflowWarning(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	defer SetLogger(nil)

	r, _ := newTestRenderer(t)
	r.Begin()
	for i := 0; i < cmdbuf.MaxCommands; i++ {
		r.Pix(0, 0, 1)
	}
	if err := r.End(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("full buffer without overflow logged: %q", buf.String())
	}

	r.Pix(1, 1, 1)
	if err := r.End(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "command buffer full") || !strings.Contains(out, "dropped=1") {
		t.Errorf("missing overflow warning: %q", out)
	}
}

func TestBltDroppedWarning(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	defer SetLogger(nil)

	r, _ := newTestRenderer(t)
	r.Begin()
	r.Blt(0, 0, 9, 0, 0, 4, 4, NoColorKey)
	out := buf.String()
	if !strings.Contains(out, "blit dropped") || !strings.Contains(out, "image=9") {
		t.Errorf("missing dropped blit warning: %q", out)
	}
}
