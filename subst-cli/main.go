package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/glyphrun/otsubst/ot"
	"github.com/glyphrun/otsubst/otshape"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'otsubst.cli'
func tracer() tracing.Trace {
	return tracing.Select("otsubst.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.otsubst.cli":    "Info",
		"trace.otsubst.tables": "Info",
		"trace.otsubst.layout": "Info",
		"trace.otsubst.shaper": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	ttxname := flag.String("ttx", "", "TTX dump of the font to convert for (GSUB + cmap)")
	script := flag.String("script", "devanagari", "Script profile "+profileNames())
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the glyph substitution CLI")
	//
	profile, ok := otshape.ProfileFor(strings.ToLower(*script))
	if !ok {
		pterm.Error.Printf("unknown script profile: %s\n", *script)
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.New(profile.Name + " > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	conv := &Converter{repl: repl, profile: profile}
	//
	// load the font's table dump
	if err := conv.loadTTX(*ttxname); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving input lines
	pterm.Info.Println("Enter text to convert, ':uni' for codepoints, quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		setTraceLevels(tracing.LevelDebug)
	case "Info":
		setTraceLevels(tracing.LevelInfo)
	case "Error":
		setTraceLevels(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	conv.REPL()
}

func setTraceLevels(l tracing.TraceLevel) {
	for _, key := range []string{"otsubst.cli", "otsubst.tables", "otsubst.layout", "otsubst.shaper"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}

func profileNames() string {
	names := make([]string, 0, 8)
	for _, p := range otshape.Profiles() {
		names = append(names, p.Name)
	}
	return "[" + strings.Join(names, "|") + "]"
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Converter holds the REPL state: the loaded table model, the shaper, and the
// last converted line for the ':uni' command.
type Converter struct {
	repl    *readline.Instance
	profile otshape.ScriptProfile
	model   *ot.TableModel
	shaper  *otshape.Shaper
	last    string
}

// loadTTX reads a fontTools TTX dump and builds the shaper for it.
func (conv *Converter) loadTTX(name string) error {
	if name == "" {
		return fmt.Errorf("no TTX dump given, use -ttx (create one with 'ttx -t GSUB -t cmap font.ttf')")
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	tree, err := ot.ParseTTX(f)
	if err != nil {
		return err
	}
	conv.model, err = ot.Load(tree)
	if err != nil {
		return err
	}
	for _, diag := range conv.model.Errors() {
		tracer().Infof("table diagnostic: %v", diag)
	}
	conv.shaper, err = otshape.NewShaper(conv.model, conv.profile)
	if err != nil {
		return err
	}
	pterm.Printf("loaded %s: %d lookups\n", name, conv.model.NumLookups())
	return nil
}

// REPL reads one line at a time and prints its glyph-reference conversion.
// Lines starting with ':' are commands.
func (conv *Converter) REPL() {
	for {
		line, err := conv.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if conv.command(line) {
				break
			}
			continue
		}
		conv.last = line
		out, report := conv.shaper.Shape(line)
		pterm.Println(out)
		if len(report.Unmapped) > 0 {
			pterm.Printf("%d characters not in font, passed through\n", len(report.Unmapped))
		}
		if report.BoundaryMisses > 0 {
			pterm.Printf("%d repositioners left in place\n", report.BoundaryMisses)
		}
		if report.CapHits > 0 {
			pterm.Printf("%d words hit the substitution iteration cap\n", report.CapHits)
		}
	}
	pterm.Info.Println("Good bye!")
}

// command dispatches ':'-prefixed REPL commands; it returns true to quit.
func (conv *Converter) command(line string) bool {
	switch strings.ToLower(line) {
	case ":quit", ":q":
		return true
	case ":uni": // codepoints of the last converted line
		if conv.last == "" {
			pterm.Println("nothing converted yet")
			return false
		}
		var sb strings.Builder
		for _, r := range conv.last {
			if r < 0x20 {
				sb.WriteByte('\n')
				continue
			}
			fmt.Fprintf(&sb, "%#x,", r)
		}
		pterm.Println(sb.String())
	case ":profile":
		p := conv.profile
		pterm.Printf("%s: script '%s' (fallback '%s'), language %s\n",
			p.Name, p.Script, p.ScriptFallback, p.Language)
	default:
		pterm.Println("commands: :uni :profile :quit")
	}
	return false
}
