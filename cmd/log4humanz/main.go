package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/domiot-io/another-mutex/pkg/logging"
)

// decodeAll writes every JSON line of r in human readable form, skipping lines that do not parse.
func decodeAll(r io.Reader, w io.Writer) (skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	decoder := logging.NewDecoder(w)
	for scanner.Scan() {
		if _, err := decoder.Write(scanner.Bytes()); err != nil {
			skipped++
		}
	}
	return skipped, scanner.Err()
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: log4humanz logfile.json (\"-\" for stdin)")
		os.Exit(2)
	}

	var input io.Reader = os.Stdin
	if name := flag.Arg(0); name != "-" {
		file, err := os.Open(name)
		switch {
		case os.IsNotExist(err):
			fmt.Fprintf(os.Stderr, "%s: file not present\n", name)
			os.Exit(1)
		case err != nil:
			fmt.Fprintf(os.Stderr, "%s: cannot open file\n", name)
			os.Exit(1)
		}
		defer file.Close()
		input = file
	}

	skipped, err := decodeAll(input, os.Stdout)
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "%d lines could not be decoded\n", skipped)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading failed: %s\n", err.Error())
	}
}
