/*
Command otshapecli is an interactive REPL for driving a Bidi shaping
pipeline from the terminal: load a font, request features per script, type
text, and inspect how it tokenizes and shapes.

Grounded on otcli/main.go's REPL loop, flag set and tracing setup (readline
for input, pterm for colored output, schuko/tracing + trace2go +
gologadapter for logging), adapted from OpenType-table navigation to
Bidi/feature driving.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"

	otshaper "github.com/npillmayer/otshaper"
	"github.com/npillmayer/otshaper/query"
)

// tracer traces with key 'otshaper.cli'
func tracer() tracing.Trace {
	return tracing.Select("otshaper.cli")
}

func main() {
	initDisplay()

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.otshaper.cli": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font file to load (optional)")
	flag.Parse()

	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("invalid trace level: %s", *tlevel)
		os.Exit(5)
	}

	pterm.Info.Println("Welcome to otshaper CLI")

	repl, err := readline.New("shape > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	intp := newIntp()
	if *fontname != "" {
		if err := intp.loadFont(*fontname); err != nil {
			tracer().Errorf("loading font: %v", err)
			pterm.Error.Printf("could not load %s, continuing without a font\n", *fontname)
		}
	}

	pterm.Info.Println("Quit with <ctrl>D, or type 'help'")
	intp.REPL(repl)
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is the REPL's interpreter state: the Bidi driver plus the
// feature/script bookkeeping needed to compose ApplyFeatures calls one
// "feature" command at a time.
type Intp struct {
	resolver *query.SFNTQuery
	bidi     *otshaper.Bidi
	requests []otshaper.FeatureRequest
}

func newIntp() *Intp {
	q := query.NewSFNTQuery(nil)
	intp := &Intp{resolver: q}
	intp.bidi = otshaper.NewBidi(bidi.LeftToRight, q, q)
	return intp
}

func (intp *Intp) loadFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return err
	}
	q := query.NewSFNTQuery(f)
	intp.resolver = q
	intp.bidi = otshaper.NewBidi(bidi.LeftToRight, q, q)
	intp.bidi.ApplyFeatures(intp.requests)
	pterm.Printf("loaded font %s\n", path)
	return nil
}

// REPL drives the read-parse-execute loop, mirroring otcli's shape.
func (intp *Intp) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := intp.execute(line); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) execute(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		printHelp()
	case "font":
		if len(args) != 1 {
			pterm.Error.Println("usage: font <path>")
			return
		}
		if err := intp.loadFont(args[0]); err != nil {
			pterm.Error.Println(err)
		}
	case "feature":
		intp.cmdFeature(args)
	case "shape":
		intp.cmdShape(strings.TrimSpace(strings.TrimPrefix(line, fields[0])))
	case "glyphs":
		intp.cmdGlyphs(strings.TrimSpace(strings.TrimPrefix(line, fields[0])))
	case "ranges":
		intp.cmdRanges(args)
	default:
		pterm.Error.Printf("unknown command: %s (try 'help')\n", cmd)
	}
	return false
}

func printHelp() {
	pterm.Println("commands:")
	pterm.Println("  font <path>                 load a font file")
	pterm.Println("  feature <script> <tags...>  request GSUB tags for a script, e.g. feature Arab isol init medi fina rlig")
	pterm.Println("  shape <text>                run text through the pipeline and print the bidi-reordered text")
	pterm.Println("  glyphs <text>               run text through the pipeline and print resulting glyph ids")
	pterm.Println("  ranges <name>               print the context ranges found for the last shaped text (latinWord|arabicWord|arabicSentence)")
	pterm.Println("  quit                        leave the REPL")
}

func (intp *Intp) cmdFeature(args []string) {
	if len(args) < 2 {
		pterm.Error.Println("usage: feature <script> <tags...>")
		return
	}
	scr, err := language.ParseScript(args[0])
	if err != nil {
		pterm.Error.Printf("unknown script %q: %v\n", args[0], err)
		return
	}
	intp.requests = append(intp.requests, otshaper.FeatureRequest{Script: scr, Tags: args[1:]})
	intp.bidi.ApplyFeatures(intp.requests)
	pterm.Printf("requested %v for %s\n", args[1:], scr)
}

func (intp *Intp) cmdShape(text string) {
	if text == "" {
		pterm.Error.Println("usage: shape <text>")
		return
	}
	out := intp.bidi.GetBidiText(text)
	pterm.Printf("%s\n", out)
}

func (intp *Intp) cmdGlyphs(text string) {
	if text == "" {
		pterm.Error.Println("usage: glyphs <text>")
		return
	}
	glyphs := intp.bidi.GetTextGlyphs(text)
	parts := make([]string, len(glyphs))
	for i, g := range glyphs {
		parts[i] = fmt.Sprintf("%v", g)
	}
	pterm.Printf("[%s]\n", strings.Join(parts, " "))
}

func (intp *Intp) cmdRanges(args []string) {
	if len(args) != 1 {
		pterm.Error.Println("usage: ranges <latinWord|arabicWord|arabicSentence>")
		return
	}
	ranges, ok := intp.bidi.ContextRanges(args[0])
	if !ok {
		pterm.Error.Printf("unknown context: %s\n", args[0])
		return
	}
	for _, r := range ranges {
		pterm.Printf("[%d,%d) id=%s\n", r.StartIndex, r.End(), r.RangeID)
	}
}
