package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdtree"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/mdtree")
}

func main() {
	var (
		widthFlag       int
		outPath         string
		keepFrontMatter bool
		showFootnotes   bool
	)

	flags := pflag.NewFlagSet("mdtree", pflag.ExitOnError)
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&keepFrontMatter, "keep-front-matter", false, "Parse leading YAML front matter as markup instead of stripping it")
	flags.BoolVar(&showFootnotes, "footnotes", true, "List the document footnote index after the tree")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdtree [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	reader, closers, err := openInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	defer closeAll(closers)

	src, err := io.ReadAll(reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
	if err := mdtree.ValidateInput(src); err != nil {
		fmt.Fprintf(os.Stderr, "validate input: %v\n", err)
		os.Exit(1)
	}

	lines := mdtree.SplitLines(string(src))
	if !keepFrontMatter {
		lines = mdtree.StripFrontMatter(lines)
	}

	doc, err := mdtree.New().Parse(lines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		os.Exit(1)
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	writeTree(writer, doc, resolveWidth(widthFlag))
	if showFootnotes {
		writeFootnotes(writer, doc)
	}
}

func openInputs(args []string) (io.Reader, []io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	readers := make([]io.Reader, 0, len(args))
	closers := make([]io.Closer, 0, len(args))
	for _, arg := range args {
		f, err := os.Open(normalizePath(arg))
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		readers = append(readers, f)
		closers = append(closers, f)
	}
	return io.MultiReader(readers...), closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func atoi(value string) (int, error) {
	var n int
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("invalid int")
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, nil
}
