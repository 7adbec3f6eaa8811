package utils

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/servertools/servertools/locale"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestPathData(t *testing.T) {
	old := DataFolder
	DataFolder = "servertools"
	defer func() { DataFolder = old }()

	abs, _ := filepath.Abs("motd.txt")
	tests := []struct {
		in       []string
		expected string
	}{
		{in: []string{"motd.txt"}, expected: filepath.Join("servertools", "motd.txt")},
		{in: []string{"a", "command.yml"}, expected: filepath.Join("servertools", "a", "command.yml")},
		{in: []string{abs}, expected: abs},
	}
	for _, tt := range tests {
		if got := PathData(tt.in...); got != tt.expected {
			t.Fatalf("%v expected: %s\ngot: %s\n", tt.in, tt.expected, got)
		}
	}
}

func TestRecoverCall(t *testing.T) {
	errTest := errors.New("test")
	if err := RecoverCall(func() error { return errTest }); err != errTest {
		t.Fatalf("expected returned error, got %v", err)
	}
	if err := RecoverCall(func() error { panic(errTest) }); err != errTest {
		t.Fatalf("expected panic error, got %v", err)
	}
	if err := RecoverCall(func() error { panic("boom") }); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := RecoverCall(func() error { return nil }); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestErrorHandler(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	errTest := errors.New("test")
	ErrorHandler(errTest)

	e := hook.LastEntry()
	if e == nil {
		t.Fatal("expected a log entry")
	}
	if e.Level != logrus.ErrorLevel || e.Message != locale.Loc("fatal_error", nil) {
		t.Fatalf("unexpected entry %v %q", e.Level, e.Message)
	}
	if e.Data[logrus.ErrorKey] != errTest {
		t.Fatalf("expected error field, got %v", e.Data[logrus.ErrorKey])
	}
}
