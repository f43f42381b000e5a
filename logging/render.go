package logging

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"minic/ast"
	"minic/ir"
	"minic/token"
)

// render.go is the CLI-only half of this package: a stateless renderer
// over Diagnostic values and a source string. The compilation core
// imports this package only for the Diagnostic and Sink types and never
// calls anything here, so compile's purity contract is never at risk of a rendering
// call mutating shared state between calls.

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
)

// categoryLabels maps a diagnostic category to the banner text it gets.
var categoryLabels = map[string]string{
	"lexical":  "Lexical Error",
	"syntax":   "Syntax Error",
	"semantic": "Semantic Error",
}

// RenderBanner prints the compiler's startup line.
func RenderBanner(version, target string) {
	fmt.Print("minic ")
	InfoColorFG.Print("v" + version)
	fmt.Print(" -- target: ")
	InfoColorFG.Println(target)
}

// RenderDiagnostic prints one diagnostic's banner and, when the reported
// line exists in source, the offending line with a caret under its column.
func RenderDiagnostic(source, category string, d Diagnostic) {
	fmt.Print("\n-- ")
	label := categoryLabels[category]
	ErrorStyleBG.Print(label)
	fmt.Print(" ")
	fmt.Println(strings.Repeat("-", 40-len(label)))

	fmt.Println(d.Message)

	line, ok := sourceLine(source, d.Line)
	if !ok {
		return
	}

	fmt.Println()
	lineNumberWidth := len(strconv.Itoa(d.Line)) + 1
	fmtStr := "%-" + strconv.Itoa(lineNumberWidth) + "v"

	InfoColorFG.Print(fmt.Sprintf(fmtStr, d.Line))
	fmt.Print("|  ")
	fmt.Println(line)

	fmt.Print(strings.Repeat(" ", lineNumberWidth), "|  ")
	col := d.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	fmt.Print(strings.Repeat(" ", col))
	ErrorColorFG.Println("^")
}

func sourceLine(source string, lineNo int) (string, bool) {
	if lineNo <= 0 {
		return "", false
	}
	sc := bufio.NewScanner(strings.NewReader(source))
	for n := 1; sc.Scan(); n++ {
		if n == lineNo {
			return sc.Text(), true
		}
	}
	return "", false
}

// RenderDiagnostics renders every diagnostic in a category, in order.
func RenderDiagnostics(source, category string, diags []Diagnostic) {
	for _, d := range diags {
		RenderDiagnostic(source, category, d)
	}
}

// phaseSpinner tracks the single in-flight phase spinner, if any. The
// core pipeline itself runs as one synchronous call, so the CLI wraps
// that whole call in a single named phase rather than pretending to
// observe each internal stage.
var (
	phaseSpinner *pterm.SpinnerPrinter
	currentPhase string
	phaseStarted time.Time
)

// BeginPhase starts a labelled spinner.
func BeginPhase(phase string) {
	currentPhase = phase
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: SuccessStyleBG, Text: "Done"},
	}
	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: ErrorStyleBG, Text: "Fail"},
	}
	phaseSpinner.Start(phase + "...")
	phaseStarted = time.Now()
}

// EndPhase stops the spinner started by BeginPhase.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}
	elapsed := fmt.Sprintf("(%.3fs)", time.Since(phaseStarted).Seconds())
	if success {
		phaseSpinner.Success(currentPhase+" ", elapsed)
	} else {
		phaseSpinner.Fail(currentPhase + " " + elapsed)
	}
	phaseSpinner = nil
}

// RenderTokens prints one token per line, for CLI introspection of the
// lexer's output.
func RenderTokens(tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Println(tok.String())
	}
}

// RenderAST prints an indented tree of node, for CLI introspection of the
// parser's output.
func RenderAST(node *ast.Node) {
	renderNode(node, 0)
}

func renderNode(node *ast.Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if node.Value != "" {
		fmt.Printf("%s%s %q\n", indent, node.Kind, node.Value)
	} else {
		fmt.Printf("%s%s\n", indent, node.Kind)
	}
	for _, child := range node.Children {
		renderNode(child, depth+1)
	}
}

// RenderInstructions prints one three-address instruction per line, for
// CLI introspection of the IR generator's or optimizer's output.
func RenderInstructions(instrs []ir.Instruction) {
	for _, in := range instrs {
		fmt.Println(formatInstruction(in))
	}
}

func formatInstruction(in ir.Instruction) string {
	switch in.Op {
	case ir.LABEL:
		return string(in.Result) + ":"
	case ir.ENTER, ir.LEAVE:
		return "  " + string(in.Op)
	case ir.RET:
		if in.Arg1 == "" {
			return "  RET"
		}
		return "  RET " + in.Arg1
	case ir.JUMP:
		return "  JUMP " + in.Arg2
	case ir.JUMPTRUE, ir.JUMPFALSE:
		return "  " + string(in.Op) + " " + in.Arg1 + ", " + in.Arg2
	case ir.PARAM:
		return "  PARAM " + in.Arg1
	case ir.PRINT:
		return "  PRINT " + in.Arg1
	}
	parts := []string{"  " + in.Result, "=", string(in.Op), in.Arg1}
	if in.Arg2 != "" {
		parts = append(parts, in.Arg2)
	}
	return strings.Join(parts, " ")
}

// RenderSummary prints the closing error/warning tally.
func RenderSummary(errorCount int) {
	fmt.Print("\n")
	if errorCount == 0 {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	switch errorCount {
	case 0:
		SuccessColorFG.Println("(0 errors)")
	case 1:
		ErrorColorFG.Println("(1 error)")
	default:
		ErrorColorFG.Printf("(%d errors)\n", errorCount)
	}
}
