package main

import (
	"path/filepath"
	"strings"
)

// Language identifies a supported source language. The value doubles as
// the key used in the config file and on the command line.
type Language string

const (
	LangC          Language = "c"
	LangCpp        Language = "cpp"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangRust       Language = "rust"
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangCSharp     Language = "csharp"
	LangSwift      Language = "swift"
	LangKotlin     Language = "kotlin"
	LangScala      Language = "scala"
	LangHaskell    Language = "haskell"
	LangFSharp     Language = "fsharp"
	LangOCaml      Language = "ocaml"
	LangNim        Language = "nim"
	LangZig        Language = "zig"
	LangV          Language = "v"
	LangOdin       Language = "odin"
	LangJai        Language = "jai"
)

var allLanguages = []Language{
	LangC, LangCpp, LangPython, LangJava, LangRust, LangGo,
	LangJavaScript, LangTypeScript, LangCSharp, LangSwift, LangKotlin,
	LangScala, LangHaskell, LangFSharp, LangOCaml, LangNim, LangZig,
	LangV, LangOdin, LangJai,
}

// Name returns the display name of the language.
func (l Language) Name() string {
	switch l {
	case LangC:
		return "C"
	case LangCpp:
		return "C++"
	case LangPython:
		return "Python"
	case LangJava:
		return "Java"
	case LangRust:
		return "Rust"
	case LangGo:
		return "Go"
	case LangJavaScript:
		return "JavaScript"
	case LangTypeScript:
		return "TypeScript"
	case LangCSharp:
		return "C#"
	case LangSwift:
		return "Swift"
	case LangKotlin:
		return "Kotlin"
	case LangScala:
		return "Scala"
	case LangHaskell:
		return "Haskell"
	case LangFSharp:
		return "F#"
	case LangOCaml:
		return "OCaml"
	case LangNim:
		return "Nim"
	case LangZig:
		return "Zig"
	case LangV:
		return "V"
	case LangOdin:
		return "Odin"
	case LangJai:
		return "Jai"
	}
	return string(l)
}

// Extensions returns the file extensions (without the leading dot) that
// map to this language.
func (l Language) Extensions() []string {
	switch l {
	case LangC:
		return []string{"c", "h"}
	case LangCpp:
		return []string{"cpp", "cc", "cxx", "c++", "hpp", "hxx", "h++"}
	case LangPython:
		return []string{"py", "pyw", "pyx", "pxd"}
	case LangJava:
		return []string{"java"}
	case LangRust:
		return []string{"rs"}
	case LangGo:
		return []string{"go"}
	case LangJavaScript:
		return []string{"js", "mjs", "cjs"}
	case LangTypeScript:
		return []string{"ts", "tsx"}
	case LangCSharp:
		return []string{"cs"}
	case LangSwift:
		return []string{"swift"}
	case LangKotlin:
		return []string{"kt", "kts"}
	case LangScala:
		return []string{"scala", "sc"}
	case LangHaskell:
		return []string{"hs", "lhs"}
	case LangFSharp:
		return []string{"fs", "fsx", "fsi"}
	case LangOCaml:
		return []string{"ml", "mli"}
	case LangNim:
		return []string{"nim"}
	case LangZig:
		return []string{"zig"}
	case LangV:
		return []string{"v"}
	case LangOdin:
		return []string{"odin"}
	case LangJai:
		return []string{"jai"}
	}
	return nil
}

// Compiled reports whether the language has an ahead-of-time toolchain.
// Interpreted languages are syntax-checked instead of compiled.
func (l Language) Compiled() bool {
	switch l {
	case LangPython, LangJavaScript, LangTypeScript:
		return false
	}
	return true
}

// Probe returns the command used to check toolchain availability and
// obtain a version string. Interpreted languages without a separate
// toolchain return an empty command.
func (l Language) Probe() (string, []string) {
	switch l {
	case LangC:
		return "gcc", []string{"--version"}
	case LangCpp:
		return "g++", []string{"--version"}
	case LangJava:
		return "javac", []string{"-version"}
	case LangRust:
		return "rustc", []string{"--version"}
	case LangGo:
		return "go", []string{"version"}
	case LangCSharp:
		return "dotnet", []string{"--version"}
	case LangSwift:
		return "swiftc", []string{"--version"}
	case LangKotlin:
		return "kotlinc", []string{"-version"}
	case LangScala:
		return "scalac", []string{"-version"}
	case LangHaskell:
		return "ghc", []string{"--version"}
	case LangFSharp:
		return "fsharpc", []string{"--help"}
	case LangOCaml:
		return "ocamlc", []string{"-version"}
	case LangNim:
		return "nim", []string{"--version"}
	case LangZig:
		return "zig", []string{"version"}
	case LangV:
		return "v", []string{"version"}
	case LangOdin:
		return "odin", []string{"version"}
	case LangJai:
		return "jai", []string{"--version"}
	}
	return "", nil
}

// CompileArgv builds the toolchain invocation for a single source file.
// customFlags applies to C and C++ only; a bare word in it is treated as
// a flag and gets a "-" prefix.
func (l Language) CompileArgv(file string, customFlags string) []string {
	objFile := strings.TrimSuffix(file, filepath.Ext(file)) + ".o"

	switch l {
	case LangC:
		argv := []string{"gcc", "-c"}
		argv = append(argv, normalizeFlags(customFlags)...)
		return append(argv, "-o", objFile, file)
	case LangCpp:
		argv := []string{"g++", "-c"}
		argv = append(argv, normalizeFlags(customFlags)...)
		return append(argv, "-o", objFile, file)
	case LangPython:
		return []string{"python3", "-m", "py_compile", file}
	case LangJava:
		return []string{"javac", file}
	case LangRust:
		return []string{"rustc", file}
	case LangGo:
		return []string{"go", "build", file}
	case LangCSharp:
		return []string{"dotnet", "build", file}
	case LangSwift:
		return []string{"swiftc", file}
	case LangKotlin:
		return []string{"kotlinc", file}
	case LangScala:
		return []string{"scalac", file}
	case LangHaskell:
		return []string{"ghc", "-c", file}
	case LangFSharp:
		return []string{"fsharpc", file}
	case LangOCaml:
		return []string{"ocamlc", "-c", file}
	case LangNim:
		return []string{"nim", "compile", file}
	case LangZig:
		return []string{"zig", "build-exe", file}
	case LangV:
		return []string{"v", file}
	case LangOdin:
		return []string{"odin", "build", file}
	case LangJai:
		return []string{"jai", file}
	case LangTypeScript:
		return []string{"tsc", "--noEmit", file}
	case LangJavaScript:
		return []string{"node", "--check", file}
	}
	return nil
}

func normalizeFlags(flags string) []string {
	var out []string
	for _, f := range strings.Fields(flags) {
		if !strings.HasPrefix(f, "-") {
			f = "-" + f
		}
		out = append(out, f)
	}
	return out
}

// languageByExt maps a lowercase file extension to its language.
var languageByExt = func() map[string]Language {
	m := make(map[string]Language)
	for _, lang := range allLanguages {
		for _, ext := range lang.Extensions() {
			m[ext] = lang
		}
	}
	return m
}()

// languageForFile returns the language a file belongs to, going by its
// extension.
func languageForFile(name string) (Language, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "", false
	}
	lang, ok := languageByExt[ext]
	return lang, ok
}
