package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteReportAllCompiled(t *testing.T) {
	results := []Result{
		{Language: LangC, Compiled: []string{"a.c", "b.c"}},
		{Language: LangPython, Compiled: []string{"s.py"}},
	}

	var buf bytes.Buffer
	failed := writeReport(&buf, results, false)

	if failed != 0 {
		t.Errorf("Expected 0 failures, got %d", failed)
	}
	out := buf.String()
	if !strings.Contains(out, "ok   C: 2 files compiled") {
		t.Errorf("Expected C summary line, got:\n%s", out)
	}
	if !strings.Contains(out, "ok   Python: 1 file compiled") {
		t.Errorf("Expected singular Python summary line, got:\n%s", out)
	}
	if !strings.Contains(out, "Total: 3 files, 3 compiled, 0 failed") {
		t.Errorf("Expected totals line, got:\n%s", out)
	}
	if !strings.Contains(out, "All files compiled successfully.") {
		t.Errorf("Expected success footer, got:\n%s", out)
	}
}

func TestWriteReportWithFailures(t *testing.T) {
	results := []Result{
		{
			Language: LangCpp,
			Compiled: []string{"ok.cpp"},
			Failed:   []string{"bad.cpp"},
			Errs:     "bad.cpp: compilation failed: missing semicolon\n",
		},
	}

	var buf bytes.Buffer
	failed := writeReport(&buf, results, true)

	if failed != 1 {
		t.Errorf("Expected 1 failure, got %d", failed)
	}
	out := buf.String()
	if !strings.Contains(out, "FAIL C++: 1 file failed, 1 compiled") {
		t.Errorf("Expected failure line, got:\n%s", out)
	}
	if !strings.Contains(out, "missing semicolon") {
		t.Errorf("Expected verbose error detail, got:\n%s", out)
	}
	if !strings.Contains(out, "1 file failed to compile.") {
		t.Errorf("Expected failure footer, got:\n%s", out)
	}
}

func TestWriteReportVerboseOutput(t *testing.T) {
	results := []Result{
		{
			Language: LangGo,
			Compiled: []string{"main.go"},
			Output:   "main.go: linking done\n",
		},
	}

	var quiet, loud bytes.Buffer
	writeReport(&quiet, results, false)
	writeReport(&loud, results, true)

	if strings.Contains(quiet.String(), "linking done") {
		t.Error("Did not expect toolchain output without verbose")
	}
	if !strings.Contains(loud.String(), "linking done") {
		t.Error("Expected toolchain output with verbose")
	}
}
