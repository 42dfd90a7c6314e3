package main

import (
	"reflect"
	"testing"
)

func TestLanguageForFile(t *testing.T) {
	testCases := []struct {
		name   string
		file   string
		expect Language
		found  bool
	}{
		{"c file", "main.c", LangC, true},
		{"c header", "util.h", LangC, true},
		{"cpp file", "helper.cpp", LangCpp, true},
		{"cpp alt extension", "widget.cxx", LangCpp, true},
		{"uppercase extension", "HELPER.CPP", LangCpp, true},
		{"python file", "script.py", LangPython, true},
		{"rust file", "hello.rs", LangRust, true},
		{"go file", "main.go", LangGo, true},
		{"typescript tsx", "app.tsx", LangTypeScript, true},
		{"no extension", "Makefile", "", false},
		{"unknown extension", "readme.md", "", false},
		{"dotfile without extension", ".gitignore", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lang, ok := languageForFile(tc.file)
			if ok != tc.found {
				t.Fatalf("For %q, expected found=%v, got %v", tc.file, tc.found, ok)
			}
			if ok && lang != tc.expect {
				t.Errorf("For %q, expected %s, got %s", tc.file, tc.expect, lang)
			}
		})
	}
}

func TestExtensionRegistryHasNoOverlap(t *testing.T) {
	seen := make(map[string]Language)
	for _, lang := range allLanguages {
		for _, ext := range lang.Extensions() {
			if prev, ok := seen[ext]; ok {
				t.Errorf("Extension %q claimed by both %s and %s", ext, prev, lang)
			}
			seen[ext] = lang
		}
	}
}

func TestCompileArgv(t *testing.T) {
	testCases := []struct {
		name   string
		lang   Language
		file   string
		flags  string
		expect []string
	}{
		{
			name:   "c without flags",
			lang:   LangC,
			file:   "main.c",
			expect: []string{"gcc", "-c", "-o", "main.o", "main.c"},
		},
		{
			name:   "c with bare word flags",
			lang:   LangC,
			file:   "main.c",
			flags:  "Wall -O2",
			expect: []string{"gcc", "-c", "-Wall", "-O2", "-o", "main.o", "main.c"},
		},
		{
			name:   "cpp with flags",
			lang:   LangCpp,
			file:   "src/helper.cpp",
			flags:  "-std=c++17",
			expect: []string{"g++", "-c", "-std=c++17", "-o", "src/helper.o", "src/helper.cpp"},
		},
		{
			name:   "python syntax check",
			lang:   LangPython,
			file:   "script.py",
			expect: []string{"python3", "-m", "py_compile", "script.py"},
		},
		{
			name:   "go build",
			lang:   LangGo,
			file:   "main.go",
			expect: []string{"go", "build", "main.go"},
		},
		{
			name:   "rust",
			lang:   LangRust,
			file:   "hello.rs",
			expect: []string{"rustc", "hello.rs"},
		},
		{
			name:   "typescript noEmit",
			lang:   LangTypeScript,
			file:   "app.ts",
			expect: []string{"tsc", "--noEmit", "app.ts"},
		},
		{
			name:   "javascript check",
			lang:   LangJavaScript,
			file:   "index.js",
			expect: []string{"node", "--check", "index.js"},
		},
		{
			name:   "haskell object",
			lang:   LangHaskell,
			file:   "Main.hs",
			expect: []string{"ghc", "-c", "Main.hs"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.lang.CompileArgv(tc.file, tc.flags)
			if !reflect.DeepEqual(got, tc.expect) {
				t.Errorf("Expected argv %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestCompiledVsInterpreted(t *testing.T) {
	for _, lang := range []Language{LangPython, LangJavaScript, LangTypeScript} {
		if lang.Compiled() {
			t.Errorf("Expected %s to be interpreted", lang.Name())
		}
	}
	for _, lang := range []Language{LangC, LangCpp, LangRust, LangGo, LangZig} {
		if !lang.Compiled() {
			t.Errorf("Expected %s to be compiled", lang.Name())
		}
	}
}

func TestProbeCoversCompiledLanguages(t *testing.T) {
	for _, lang := range allLanguages {
		tool, _ := lang.Probe()
		if lang.Compiled() && tool == "" {
			t.Errorf("Compiled language %s has no toolchain probe", lang.Name())
		}
		if !lang.Compiled() && tool != "" {
			t.Errorf("Interpreted language %s should not need a probe", lang.Name())
		}
	}
}
