/*
Salvoi starts an interactive Salvo console session.

It reads Salvo commands from stdin, checks that each one is well-formed, and
reports each accepted command back in its typed form until the "QUIT" command
is input or input ends. Malformed commands are explained and never accepted.

Usage:

	salvoi [flags]

The flags are:

	-v, --version
		Give the current version of Salvo and then exit.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched in
		a tty with stdin and stdout.

	--debug
		Write a diagnostic line to stderr for every command that is validated.

Once a session has started, type "HELP" for an explanation of the commands. To
exit, type "QUIT".
*/
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dekarrin/salvo"
	"github.com/dekarrin/salvo/internal/command"
	"github.com/dekarrin/salvo/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitGameError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Give the version info and then exit.")
	flagDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagDebug   = pflag.Bool("debug", false, "Log every command validation to stderr.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var lg command.Logger
	if *flagDebug {
		lg = log.New(os.Stderr, "", log.LstdFlags)
	}
	disp := command.NewDispatcher(command.DefaultRegistry(), lg)

	eng, initErr := salvo.New(os.Stdin, os.Stdout, disp, nil, *flagDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
	}
}
