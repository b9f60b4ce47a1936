package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/smarthome-go/rxlex/rxlex/analyzer"
	"github.com/smarthome-go/rxlex/rxlex/diagnostic"
	"github.com/smarthome-go/rxlex/rxlex/parser"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

const programName = "rxlex"
const version = "latest"

type environment struct {
	fs       afero.Fs
	settings settings
	color    bool
}

func inputValidator(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("Expected exactly one argument")
	}
	return nil
}

func printDiagnostics(output io.Writer, input string, diagnostics []diagnostic.Diagnostic, color bool) {
	for _, item := range diagnostics {
		fmt.Fprintln(output, item.Display(input, color))
	}
}

func runQuantifier(env *environment, output io.Writer, input string, dump bool) error {
	quantifier, err := parser.ParseQuantifier(input)
	if err != nil {
		printDiagnostics(output, input, []diagnostic.Diagnostic{diagnostic.FromError(err)}, env.color)
		return fmt.Errorf("invalid quantifier %q", input)
	}

	lower, upper, bounded := quantifier.Bounds()
	upperText := "inf"
	if bounded {
		upperText = fmt.Sprint(upper)
	}

	fmt.Fprintf(output, "Kind:      %s\n", quantifier.Kind())
	fmt.Fprintf(output, "Canonical: %q\n", quantifier.String())
	fmt.Fprintf(output, "Bounds:    %d..%s\n", lower, upperText)

	if dump {
		spew.Fdump(output, quantifier)
	}

	if env.settings.Lint {
		printDiagnostics(output, input, analyzer.AnalyzeQuantifier(input, quantifier), env.color)
	}

	return nil
}

func runClass(env *environment, output io.Writer, input string, dump bool) error {
	class, err := parser.ParseRange(input)
	if err != nil {
		printDiagnostics(output, input, []diagnostic.Diagnostic{diagnostic.FromError(err)}, env.color)
		return fmt.Errorf("invalid character class %q", input)
	}

	fmt.Fprintf(output, "Canonical: %s\n", class)
	for _, match := range class.Matches() {
		fmt.Fprintf(output, " - %s %s\n", match.Kind(), match)
	}

	if dump {
		spew.Fdump(output, class)
	}

	if env.settings.Lint {
		printDiagnostics(output, input, analyzer.AnalyzeRange(input, class), env.color)
	}

	return nil
}

func newApp(fs afero.Fs, output io.Writer) *cli.App {
	env := &environment{fs: fs}

	dumpFlag := &cli.BoolFlag{
		Name:    "dump",
		Usage:   "If set, the parsed value is dumped.",
		Aliases: []string{"d"},
	}

	// nolint:exhaustruct
	return &cli.App{
		Name:      programName,
		Usage:     "Lex regex quantifiers and bracket classes",
		Version:   version,
		Compiled:  time.Now(),
		Writer:    output,
		ErrWriter: output,
		Authors: []*cli.Author{
			{
				Name:  "The Smarthome Authors",
				Email: "",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path of the config file (default: ./.rxlex.yaml if present)",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Colorize diagnostics (auto, always, never)",
			},
			&cli.BoolFlag{
				Name:  "no-lint",
				Usage: "If set, accepted input is not linted.",
			},
		},
		Before: func(ctx *cli.Context) error {
			loaded, err := loadSettings(fs, ctx.String("config"))
			if err != nil {
				return err
			}

			if ctx.IsSet("color") {
				loaded.Color = ctx.String("color")
			}
			if ctx.Bool("no-lint") {
				loaded.Lint = false
			}

			color, err := resolveColor(loaded.Color, output)
			if err != nil {
				return err
			}

			env.settings = loaded
			env.color = color
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "quantifier",
				Aliases:   []string{"q"},
				Usage:     "Parse a quantifier suffix like `{2,5}`",
				ArgsUsage: "[suffix]",
				Flags:     []cli.Flag{dumpFlag},
				Before:    inputValidator,
				Action: func(ctx *cli.Context) error {
					return runQuantifier(env, output, ctx.Args().Get(0), ctx.Bool("dump"))
				},
			},
			{
				Name:      "class",
				Usage:     "Parse a bracket character class like `[a-z]`",
				ArgsUsage: "[body]",
				Flags:     []cli.Flag{dumpFlag},
				Before:    inputValidator,
				Action: func(ctx *cli.Context) error {
					return runClass(env, output, ctx.Args().Get(0), ctx.Bool("dump"))
				},
			},
			{
				Name:      "check",
				Usage:     "Check a file of `quantifier <text>` and `class <text>` lines",
				ArgsUsage: "[file]",
				Before:    inputValidator,
				Action: func(ctx *cli.Context) error {
					return runCheck(env, output, ctx.Args().First())
				},
			},
			{
				Name:    "fuzz",
				Aliases: []string{"f"},
				Usage:   "fuzzing subcommand",
				Subcommands: []*cli.Command{
					{
						Name:  "run",
						Usage: "generate cases and check that every accepted value survives a reparse",
						Flags: fuzzFlags(),
						Action: func(ctx *cli.Context) error {
							return runFuzz(env, output, fuzzOptionsFrom(ctx, env.settings))
						},
					},
					{
						Name:      "gen",
						Usage:     "generate a fuzzing corpus zip",
						ArgsUsage: "[db-output]",
						Flags:     fuzzFlags(),
						Before:    inputValidator,
						Action: func(ctx *cli.Context) error {
							return generateFuzzDB(env, output, ctx.Args().First(), fuzzOptionsFrom(ctx, env.settings))
						},
					},
					{
						Name:      "validate",
						Usage:     "Validate existing fuzzing database",
						ArgsUsage: "[db]",
						Before:    inputValidator,
						Action: func(ctx *cli.Context) error {
							return validateFuzzDB(env, output, ctx.Args().First())
						},
					},
				},
			},
		},
	}
}

func main() {
	app := newApp(afero.NewOsFs(), os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
