package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stifskere/proofroute/internal/cli"
	"github.com/stifskere/proofroute/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Module name used for import paths (defaults to the go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output")
		quietFlag   = flag.Bool("quiet", false, "Only show errors")
		cleanFlag   = flag.Bool("clean", false, "Delete generated autogen_proof.go files instead of generating")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Proofroute Code Generator\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go files with proof:: annotations and generates\n")
		fmt.Fprintf(os.Stderr, "error renderers and route wrappers.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     An argument ending in ... is scanned recursively\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/api ./internal/admin      # Scan specific directories\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module example.com/app ./...       # Override the module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                        # Remove generated files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	config := &cli.Config{
		Directories: args,
		ModuleName:  *moduleFlag,
		Verbose:     *verboseFlag,
		Quiet:       *quietFlag,
	}

	generator := cli.NewGenerator(diagnostics)

	var err error
	if *cleanFlag {
		err = generator.Clean(config)
	} else {
		err = generator.Run(config)
	}
	if err != nil {
		diagnostics.Error("%v", err)
		os.Exit(1)
	}
}
