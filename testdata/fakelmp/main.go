// Package main provides a stand-in engine for tests. It reads the deck passed
// with -in, writes the dump file the deck names and records each call.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	in := flag.String("in", "", "input deck")
	flag.Parse()

	if log := os.Getenv("FAKELMP_LOG"); log != "" {
		f, err := os.OpenFile(log, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintf(f, "-in %s\n", *in)
		f.Close()
	}

	if fail := os.Getenv("FAKELMP_FAIL_ON"); fail != "" && fail == *in {
		fmt.Fprintf(os.Stderr, "ERROR: simulated failure on %s\n", *in)
		os.Exit(2)
	}

	dump, err := dumpFile(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "LAMMPS (fake) reading %s\n", *in)

	var b strings.Builder
	for step := 0; step < 2; step++ {
		for id := 1; id <= 3; id++ {
			fmt.Fprintf(&b, "%d %.15e\n", id, 0.5*float64(step)/float64(id))
		}
	}
	if err := os.WriteFile(dump, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dumpFile(deck string) (string, error) {
	f, err := os.Open(deck)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 6 && fields[0] == "dump" {
			return fields[5], nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}

	return "", fmt.Errorf("%s: no dump command", deck)
}
