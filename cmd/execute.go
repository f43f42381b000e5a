// Package cmd implements the minic command-line front end: argument
// parsing, source loading, config lookup, and rendering of a
// CompilationResult. None of it is reachable from compiler.Compile --
// the core stays a pure function from string to result.
package cmd

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"

	"minic/common"
	"minic/compiler"
	"minic/config"
	"minic/logging"
)

// Execute runs the minic CLI.
func Execute() {
	cli := olive.NewCLI("minic", "minic compiles the toy language described in its grammar", true)

	compileCmd := cli.AddSubcommand("compile", "compile a source file", true)
	compileCmd.AddPrimaryArg("source-path", "path to the source file, or '-' for stdin", true)
	emitArg := compileCmd.AddSelectorArg("emit", "e", "which artifact to render",
		false, []string{"tokens", "ast", "ir", "optimized-ir", "asm", "llvm-ir"})
	emitArg.SetDefaultValue("asm")
	logLvlArg := compileCmd.AddSelectorArg("loglevel", "ll", "how much CLI output to print",
		false, []string{"silent", "errors-only", "all"})
	logLvlArg.SetDefaultValue("all")
	compileCmd.AddFlag("no-color", "nc", "disable colored diagnostic output")

	cli.AddSubcommand("version", "print the minic version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.ErrorColorFG.Println(err.Error())
		return
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "compile":
		execCompileCommand(subResult)
	case "version":
		logging.InfoColorFG.Println("minic v" + common.Version)
	}
}

// execCompileCommand loads the source named by the primary argument, runs
// it through compiler.Compile, and renders the requested artifact.
func execCompileCommand(result *olive.ArgParseResult) {
	sourcePath, _ := result.PrimaryArg()

	source, err := readSource(sourcePath)
	if err != nil {
		logging.ErrorColorFG.Println(err.Error())
		return
	}

	settings, err := config.Load(common.ConfigFileName)
	if err != nil {
		logging.ErrorColorFG.Println("Config Error: " + err.Error())
		return
	}
	if v, ok := result.Arguments["emit"]; ok {
		if s, _ := v.(string); s != "" {
			settings.Emit = s
		}
	}
	if v, ok := result.Arguments["loglevel"]; ok {
		if s, _ := v.(string); s != "" {
			settings.LogLevel = s
		}
	}
	if result.HasFlag("no-color") {
		settings.Color = false
	}
	pterm.EnableColor()
	if !settings.Color {
		pterm.DisableColor()
	}

	silent := settings.LogLevel == "silent"
	if !silent {
		logging.RenderBanner(common.Version, settings.Emit)
		logging.BeginPhase("Compiling")
	}
	res := compiler.Compile(source)
	errorCount := len(res.Errors.Lexical) + len(res.Errors.Syntax) + len(res.Errors.Semantic)
	if !silent {
		logging.EndPhase(errorCount == 0)
	}

	if settings.LogLevel != "silent" {
		logging.RenderDiagnostics(source, "lexical", res.Errors.Lexical)
		logging.RenderDiagnostics(source, "syntax", res.Errors.Syntax)
		logging.RenderDiagnostics(source, "semantic", res.Errors.Semantic)
	}
	if settings.LogLevel == "all" {
		logging.RenderSummary(errorCount)
	}

	switch settings.Emit {
	case "tokens":
		logging.RenderTokens(res.Tokens)
	case "ast":
		logging.RenderAST(res.AST)
	case "ir":
		logging.RenderInstructions(res.IR)
	case "optimized-ir":
		logging.RenderInstructions(res.OptimizedIR)
	case "llvm-ir":
		os.Stdout.WriteString(res.LLVMIR)
	default:
		os.Stdout.WriteString(res.Assembly)
	}
}

// readSource loads the source text named by path. A path of "-" reads
// from stdin instead of the filesystem.
func readSource(path string) (string, error) {
	if path == "-" {
		buf, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(buf), nil
	}

	if filepath.Ext(path) != common.SrcFileExtension {
		logging.WarnColorFG.Println("warning: " + path + " does not have the conventional " + common.SrcFileExtension + " extension")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	buf, err := ioutil.ReadFile(abs)
	if err != nil {
		return "", errors.New("failed to read " + abs + ": " + err.Error())
	}
	return string(buf), nil
}
