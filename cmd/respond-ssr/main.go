// Command respond-ssr renders responsive styles of an HTML document into a
// static style sheet.
//
// Responsive declarations are read from a rules file, which assigns values
// per breakpoint alias to the elements selected by CSS selectors:
//
//	rules:
//	  - selector: "div.row > p"
//	    styles:
//	      flex: "1"
//	      flex.gt-sm: "2"
//	      order.print: "-1"
//
// Every selected element gets a class, and the document gets a <style>
// element with one @media block per breakpoint.
//
// Usage:
//
//	respond-ssr -html in.html -rules rules.yaml [-config respond.yaml] [-o out.html] [-dump]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/respond/config"
)

func main() {
	htmlFile := flag.String("html", "", "input HTML document (required)")
	rulesFile := flag.String("rules", "", "responsive rules in YAML (required)")
	configFile := flag.String("config", "", "engine options in YAML, TOML or JSON")
	outFile := flag.String("o", "", "output file (default: stdout)")
	dump := flag.Bool("dump", false, "print the element tree and stored values to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "respond-ssr - render responsive styles into a static style sheet\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s -html in.html -rules rules.yaml [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *htmlFile == "" || *rulesFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*htmlFile, *rulesFile, *configFile, *outFile, *dump); err != nil {
		fmt.Fprintf(os.Stderr, "respond-ssr: %v\n", err)
		os.Exit(1)
	}
}

func run(htmlFile, rulesFile, configFile, outFile string, dump bool) error {
	opts := config.Default()
	if configFile != "" {
		var err error
		if opts, err = config.LoadFile(configFile); err != nil {
			return err
		}
	}
	rules, err := LoadRules(rulesFile)
	if err != nil {
		return err
	}
	in, err := os.Open(htmlFile)
	if err != nil {
		return err
	}
	defer in.Close()
	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	var dumpTo io.Writer
	if dump {
		dumpTo = os.Stderr
	}
	return Render(in, out, rules, opts, dumpTo)
}
