// Command kvon converts between KVON and other formats.
//
//	kvon parse [file]      parse KVON, print indented JSON
//	kvon yaml [file]       parse KVON, print YAML
//	kvon from-json [file]  read JSON, print KVON
//	kvon from-yaml [file]  read YAML, print KVON
//	kvon fmt [file]        reformat KVON canonically
//
// Every command reads stdin when no file is given. The -spaces flag switches
// output indention from tabs to the given number of spaces.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/kvon-lang/go-kvon"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd := os.Args[1]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	spaces := fs.Int("spaces", 0, "indent output with N spaces instead of tabs")
	fs.Parse(os.Args[2:])

	ind := kvon.Tabs()
	if *spaces > 0 {
		ind = kvon.Spaces(*spaces)
	}

	input, err := readInput(fs.Args())
	if err != nil {
		fatal(err)
	}

	switch cmd {
	case "parse":
		cmdParse(input)
	case "yaml":
		cmdYAML(input)
	case "from-json":
		cmdFromJSON(input, ind)
	case "from-yaml":
		cmdFromYAML(input, ind)
	case "fmt":
		cmdFmt(input, ind)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kvon <parse|yaml|from-json|from-yaml|fmt> [-spaces N] [file]")
	os.Exit(2)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func fatal(err error) {
	msg := err.Error()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = color.RedString("%s", msg)
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func cmdParse(input []byte) {
	v, err := kvon.Parse(string(input))
	if err != nil {
		fatal(err)
	}
	out, err := json.MarshalIndent(v.Interface(), "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(out))
}

func cmdYAML(input []byte) {
	v, err := kvon.Parse(string(input))
	if err != nil {
		fatal(err)
	}
	out, err := yaml.Marshal(v.Interface())
	if err != nil {
		fatal(err)
	}
	os.Stdout.Write(out)
}

func cmdFromJSON(input []byte, ind kvon.Indention) {
	var x any
	if err := json.Unmarshal(input, &x); err != nil {
		fatal(err)
	}
	emit(x, ind)
}

func cmdFromYAML(input []byte, ind kvon.Indention) {
	var x any
	if err := yaml.Unmarshal(input, &x); err != nil {
		fatal(err)
	}
	emit(x, ind)
}

func cmdFmt(input []byte, ind kvon.Indention) {
	v, err := kvon.Parse(string(input))
	if err != nil {
		fatal(err)
	}
	fmt.Println(kvon.Encode(v, ind))
}

func emit(x any, ind kvon.Indention) {
	v, err := kvon.Build(x)
	if err != nil {
		fatal(err)
	}
	fmt.Println(kvon.Encode(v, ind))
}
