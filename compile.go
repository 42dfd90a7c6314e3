package main

import (
	"bytes"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// execCommand runs a toolchain command in dir and captures its streams.
// It is a variable so tests can substitute a recorder.
var execCommand = func(dir, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Result holds the outcome of compiling one language group.
type Result struct {
	Language Language
	Compiled []string // files that compiled cleanly
	Failed   []string // files whose toolchain invocation failed
	Output   string   // accumulated toolchain output for compiled files
	Errs     string   // accumulated toolchain output for failed files
}

// Compiler runs the per-language toolchains over detected file groups,
// one file at a time.
type Compiler struct {
	cfg      *Config
	root     string
	log      *zap.Logger
	cflags   string // command line override for C
	cxxflags string // command line override for C++
}

func NewCompiler(cfg *Config, root, cflags, cxxflags string, log *zap.Logger) *Compiler {
	return &Compiler{cfg: cfg, root: root, log: log, cflags: cflags, cxxflags: cxxflags}
}

// CompileAll compiles every group and returns one Result per language,
// ordered by language name.
func (c *Compiler) CompileAll(groups map[Language][]string) []Result {
	results := make([]Result, 0, len(groups))
	for _, lang := range sortedLanguages(groups) {
		results = append(results, c.compileGroup(lang, groups[lang]))
	}
	return results
}

func (c *Compiler) compileGroup(lang Language, files []string) Result {
	res := Result{Language: lang}
	var output, errs bytes.Buffer

	for _, file := range files {
		start := time.Now()
		out, err := c.compileFile(lang, file)
		if err != nil {
			res.Failed = append(res.Failed, file)
			errs.WriteString(file + ": " + err.Error() + "\n")
			c.log.Warn("compilation failed",
				zap.String("language", lang.Name()),
				zap.String("file", file),
				zap.Error(err))
			continue
		}
		res.Compiled = append(res.Compiled, file)
		if out != "" {
			output.WriteString(file + ": " + out + "\n")
		}
		c.log.Debug("compiled",
			zap.String("language", lang.Name()),
			zap.String("file", file),
			zap.Duration("took", time.Since(start)))
	}

	res.Output = output.String()
	res.Errs = errs.String()
	return res
}

// compileFile builds and runs the toolchain invocation for one file.
// On success it returns the toolchain's chatter, on failure an error
// carrying the most useful stream.
func (c *Compiler) compileFile(lang Language, file string) (string, error) {
	argv := lang.CompileArgv(file, c.customFlags(lang))
	tool := argv[0]
	if p := c.cfg.compilerPath(lang); p != "" {
		tool = p
	}

	stdout, stderr, err := execCommand(c.root, tool, argv[1:]...)
	if err != nil {
		return "", &compileError{detail: formatError(stdout, stderr)}
	}
	return formatOutput(stdout, stderr), nil
}

func (c *Compiler) customFlags(lang Language) string {
	switch lang {
	case LangC:
		if c.cflags != "" {
			return c.cflags
		}
	case LangCpp:
		if c.cxxflags != "" {
			return c.cxxflags
		}
	default:
		return ""
	}
	return c.cfg.flagsFor(lang)
}

type compileError struct {
	detail string
}

func (e *compileError) Error() string {
	return "compilation failed: " + e.detail
}

// formatOutput joins the captured streams for display, stdout first.
func formatOutput(stdout, stderr []byte) string {
	out := string(bytes.TrimSpace(stdout))
	errOut := string(bytes.TrimSpace(stderr))
	switch {
	case out != "" && errOut != "":
		return out + "\n" + errOut
	case out != "":
		return out
	default:
		return errOut
	}
}

// formatError prefers stderr, falls back to stdout, and never returns an
// empty string.
func formatError(stdout, stderr []byte) string {
	if errOut := string(bytes.TrimSpace(stderr)); errOut != "" {
		return errOut
	}
	if out := string(bytes.TrimSpace(stdout)); out != "" {
		return out
	}
	return "unknown compilation error"
}

// CheckToolchains probes every supported language's toolchain.
func (c *Compiler) CheckToolchains() map[Language]bool {
	available := make(map[Language]bool, len(allLanguages))
	for _, lang := range allLanguages {
		tool, args := lang.Probe()
		if tool == "" {
			available[lang] = true
			continue
		}
		_, _, err := execCommand(c.root, tool, args...)
		available[lang] = err == nil
	}
	return available
}

// ToolchainInfo collects a version string per supported language.
func (c *Compiler) ToolchainInfo() map[Language]string {
	info := make(map[Language]string, len(allLanguages))
	for _, lang := range allLanguages {
		tool, args := lang.Probe()
		if tool == "" {
			info[lang] = "built-in"
			continue
		}
		stdout, stderr, err := execCommand(c.root, tool, args...)
		if err != nil {
			info[lang] = "not available"
			continue
		}
		info[lang] = firstLine(formatOutput(stdout, stderr))
	}
	return info
}

func firstLine(s string) string {
	if i := bytes.IndexByte([]byte(s), '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
