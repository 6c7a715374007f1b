package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"blockgrid/internal/domain/coord"

	"github.com/fatih/color"
)

const usage = `usage:
  keytool encode -size N x y z
  keytool decode -size N l`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "encode":
		err = runEncode(args[1:], stdout)
	case "decode":
		err = runDecode(args[1:], stdout)
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		fmt.Fprintln(stderr, color.New(color.FgRed).Sprintf("error: %v", err))
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usage)
			return 2
		}
		return 1
	}
	return 0
}

var errUsage = errors.New("bad arguments")

func runEncode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	size := fs.Int("size", 2, "digit width per axis")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("%w: encode takes x y z", errUsage)
	}
	var p coord.Point
	for i, dst := range []*int{&p.X, &p.Y, &p.Z} {
		n, err := strconv.Atoi(fs.Arg(i))
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", errUsage, fs.Arg(i))
		}
		*dst = n
	}
	k, err := coord.Encode(p, *size)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %d\n", color.GreenString("l ="), int64(k))
	return nil
}

func runDecode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	size := fs.Int("size", 2, "digit width per axis")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: decode takes l", errUsage)
	}
	l, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", errUsage, fs.Arg(0))
	}
	p, err := coord.Decode(coord.Key(l), *size)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %d %d %d\n", color.GreenString("x y z ="), p.X, p.Y, p.Z)
	return nil
}
