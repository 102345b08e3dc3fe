package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/xenon"
)

type cmdopts struct {
	Trace   bool `long:"trace"`
	Version bool `long:"version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("xenon-lint: using xenon version %s\n", xenon.Version)
}

func showUsage() {
	fmt.Printf(`Usage : xenon-lint [options] XMLfiles ...
	Parse the XML files and report well-formedness problems.
	Reads from stdin when no files are given.
	--trace   : print every node as it is read
	--version : display the version of the XML library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	if len(args) == 0 {
		r, err := xenon.NewReader(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		return lint(r, "stdin", opts.Trace)
	}

	for _, path := range args {
		r, err := xenon.OpenReader(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		ret := lint(r, path, opts.Trace)
		r.Close()
		if ret != 0 {
			return ret
		}
	}
	return 0
}

func lint(r *xenon.Reader, name string, trace bool) int {
	for {
		ok, err := r.Read()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
			return 1
		}
		if !ok {
			return 0
		}
		if trace {
			dumpNode(os.Stdout, r)
		}
	}
}

func dumpNode(out io.Writer, r *xenon.Reader) {
	fmt.Fprintf(out, "%d:%d %s", r.Line(), r.Column(), r.NodeType())
	if qn := r.QualifiedName(); qn != "" {
		fmt.Fprintf(out, " %s", qn)
	}
	if v, err := r.Value(); err == nil && v != "" {
		fmt.Fprintf(out, " %s", excerpt(v))
	}
	if r.EmptyElement() {
		fmt.Fprint(out, " (empty)")
	}
	fmt.Fprintln(out)

	for ok, err := r.MoveToFirstAttribute(); ok && err == nil; ok, err = r.MoveToNextAttribute() {
		v, _ := r.Value()
		fmt.Fprintf(out, "    @%s=%s\n", r.QualifiedName(), excerpt(v))
	}
}

func excerpt(s string) string {
	const max = 40
	if runes := []rune(s); len(runes) > max {
		s = string(runes[:max]) + "..."
	}
	return fmt.Sprintf("%q", s)
}
