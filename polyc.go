// polyc detects the source files of a mixed-language project and runs
// each language's native toolchain over them, one file at a time,
// reporting what compiled and what did not. It can also export the
// detected sources as a single text dump sized in LLM tokens.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/perbu/polyc/tokens"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//go:embed .version
var embeddedVersion string

// stringSliceFlag is a custom flag type that allows for multiple string values
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func printUsage() {
	fmt.Printf("Usage: %s [options] <project_path>\n\n", os.Args[0])
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("\nArguments:")
	fmt.Println("  project_path           Path to the project directory to compile")
}

// languageFlags maps the per-language selection flags to their language.
type languageFlags struct {
	c, cpp, python, java, rust, golang, js, ts, all bool
}

// selection returns the languages to compile, or nil for all of them.
// Languages without a dedicated flag only compile when no specific flag
// was given.
func (lf languageFlags) selection() map[Language]bool {
	if lf.all {
		return nil
	}
	only := make(map[Language]bool)
	if lf.c {
		only[LangC] = true
	}
	if lf.cpp {
		only[LangCpp] = true
	}
	if lf.python {
		only[LangPython] = true
	}
	if lf.java {
		only[LangJava] = true
	}
	if lf.rust {
		only[LangRust] = true
	}
	if lf.golang {
		only[LangGo] = true
	}
	if lf.js {
		only[LangJavaScript] = true
	}
	if lf.ts {
		only[LangTypeScript] = true
	}
	if len(only) == 0 {
		return nil
	}
	return only
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func main() {
	var lf languageFlags
	flag.BoolVar(&lf.c, "c", false, "Compile C files")
	flag.BoolVar(&lf.cpp, "cpp", false, "Compile C++ files")
	flag.BoolVar(&lf.python, "python", false, "Check Python files")
	flag.BoolVar(&lf.java, "java", false, "Compile Java files")
	flag.BoolVar(&lf.rust, "rust", false, "Compile Rust files")
	flag.BoolVar(&lf.golang, "golang", false, "Compile Go files")
	flag.BoolVar(&lf.js, "js", false, "Check JavaScript files")
	flag.BoolVar(&lf.ts, "ts", false, "Check TypeScript files")
	flag.BoolVar(&lf.all, "all", false, "Compile all detected languages")

	var verbose bool
	flag.BoolVar(&verbose, "v", false, "Enable verbose output")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")

	var excludePatterns stringSliceFlag
	flag.Var(&excludePatterns, "e", "Add pattern to ignore (e.g., vendor)")

	var cflags, cxxflags string
	flag.StringVar(&cflags, "cflags", "", "Custom compiler flags for C")
	flag.StringVar(&cxxflags, "cxxflags", "", "Custom compiler flags for C++")

	var exportPath, model string
	flag.StringVar(&exportPath, "export", "", "Export detected sources to a file instead of compiling (- for stdout)")
	flag.StringVar(&model, "model", tokens.DefaultEncoding, "Token encoding used to size the export")

	var budget int
	flag.IntVar(&budget, "budget", 0, "Warn when the export exceeds this many tokens (0 disables)")

	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to the config file")

	var showToolchains bool
	flag.BoolVar(&showToolchains, "toolchains", false, "List toolchain availability and exit")

	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	var help bool
	flag.BoolVar(&help, "h", false, "Display this help message")
	flag.BoolVar(&help, "help", false, "Display this help message")

	flag.Usage = printUsage
	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}
	if showVersion {
		fmt.Println(strings.TrimSpace(embeddedVersion))
		os.Exit(0)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, excludePatterns...)

	logger := newLogger(verbose || cfg.Verbose)
	defer logger.Sync()

	if showToolchains {
		compiler := NewCompiler(cfg, ".", "", "", logger)
		printToolchains(os.Stdout, compiler)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	root := args[0]

	info, err := FileSystem.Stat(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Project path does not exist: %s\n", root)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Project path is not a directory: %s\n", root)
		os.Exit(1)
	}

	detector := NewDetector(FileSystem, cfg, lf.selection(), logger)
	groups, err := detector.Detect(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning project: %v\n", err)
		os.Exit(1)
	}
	if len(groups) == 0 {
		fmt.Println("No source files found.")
		os.Exit(0)
	}

	fmt.Println("Detected source files:")
	for _, lang := range sortedLanguages(groups) {
		files := groups[lang]
		fmt.Printf("  %s: %d %s\n", lang.Name(), len(files), plural(len(files)))
		if verbose {
			for _, f := range files {
				fmt.Printf("    %s\n", f)
			}
		}
	}

	if exportPath != "" {
		out := os.Stdout
		if exportPath != "-" {
			f, err := os.Create(exportPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating export file: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}
		count, err := runExport(FileSystem, out, root, groups, model, budget, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Export complete: %d %s tokens\n", count, model)
		return
	}

	compiler := NewCompiler(cfg, root, cflags, cxxflags, logger)
	results := compiler.CompileAll(groups)
	if failed := writeReport(os.Stdout, results, verbose); failed > 0 {
		os.Exit(1)
	}
}

func printToolchains(w io.Writer, compiler *Compiler) {
	available := compiler.CheckToolchains()
	info := compiler.ToolchainInfo()
	fmt.Fprintln(w, "Toolchains:")
	for _, lang := range allLanguages {
		marker := "ok"
		if !available[lang] {
			marker = "--"
		}
		fmt.Fprintf(w, "  %s %-11s %s\n", marker, lang.Name()+":", info[lang])
	}
}
