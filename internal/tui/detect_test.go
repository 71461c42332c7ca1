package tui

import (
	"bytes"
	"os"
	"testing"
)

func TestDetectMode_BUILDMETA_PLAIN(t *testing.T) {
	t.Setenv("BUILDMETA_PLAIN", "1")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(os.Stdout); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain", got)
	}
}

func TestDetectMode_CI(t *testing.T) {
	t.Setenv("BUILDMETA_PLAIN", "")
	t.Setenv("CI", "true")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(os.Stdout); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain", got)
	}
}

func TestDetectMode_NO_COLOR(t *testing.T) {
	t.Setenv("BUILDMETA_PLAIN", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "1")

	if got := DetectMode(os.Stdout); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain", got)
	}
}

func TestDetectMode_NotAFile(t *testing.T) {
	t.Setenv("BUILDMETA_PLAIN", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	if got := DetectMode(&buf); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain for a buffer", got)
	}
}

func TestIsStyled_RegularFile(t *testing.T) {
	t.Setenv("BUILDMETA_PLAIN", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsStyled(f) {
		t.Error("IsStyled() = true for a regular file, want false")
	}
}
