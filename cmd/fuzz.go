package main

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/smarthome-go/rxlex/rxlex/fuzzer"
	"github.com/urfave/cli/v2"
)

type fuzzOptions struct {
	seed    int64
	count   uint
	workers uint
	verbose bool
}

func fuzzFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "Enables additional logging during fuzz generation",
			Aliases: []string{"v"},
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "Random seed for the generator",
			Aliases: []string{"s"},
		},
		&cli.UintFlag{
			Name:    "count",
			Usage:   "The number of cases to generate",
			Aliases: []string{"n"},
		},
		&cli.UintFlag{
			Name:    "num-workers",
			Usage:   "The number of goroutines to spawn during fuzz generation. (Default is number of CPUs)",
			Aliases: []string{"w"},
		},
	}
}

func fuzzOptionsFrom(ctx *cli.Context, loaded settings) fuzzOptions {
	options := fuzzOptions{
		seed:    loaded.FuzzSeed,
		count:   loaded.FuzzCount,
		workers: loaded.FuzzWorkers,
		verbose: ctx.Bool("verbose"),
	}

	if ctx.IsSet("seed") {
		options.seed = ctx.Int64("seed")
	}
	if ctx.IsSet("count") {
		options.count = ctx.Uint("count")
	}
	if ctx.IsSet("num-workers") {
		options.workers = ctx.Uint("num-workers")
	}

	return options
}

func reportFailure(output io.Writer, result fuzzer.Result) {
	fmt.Fprintf(output, "FAIL %s: %s\n", result.Case, result.Failure)
}

func runFuzz(env *environment, output io.Writer, options fuzzOptions) error {
	unique, failures := 0, 0

	gen := fuzzer.NewGenerator(
		func(result fuzzer.Result, _ string) error {
			unique++
			if !result.Passed() {
				failures++
				reportFailure(output, result)
			}
			return nil
		},
		options.seed,
		options.count,
		options.workers,
		options.verbose,
	)

	if err := gen.Gen(); err != nil {
		return err
	}

	fmt.Fprintf(output, "Checked %d unique cases (seed %d): %d failed\n", unique, options.seed, failures)
	if failures > 0 {
		return fmt.Errorf("%d fuzzing cases failed", failures)
	}

	return nil
}

//
// Corpus
//

type tuple struct {
	kind  string
	hash  string
	value string
}

func writeOnce(input tuple, file *zip.Writer) error {
	w, err := file.Create(fmt.Sprintf("%s/%s.txt", input.kind, input.hash))
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, strings.NewReader(input.value)); err != nil {
		return err
	}

	return nil
}

// Keeps draining the channel after a failed write so that the sender never blocks.
func bufferFlush(tupleChan <-chan tuple, file *zip.Writer) error {
	var firstErr error
	for job := range tupleChan {
		if firstErr != nil {
			continue
		}
		firstErr = writeOnce(job, file)
	}
	return firstErr
}

func generateFuzzDB(env *environment, output io.Writer, outputFile string, options fuzzOptions) error {
	archive, err := env.fs.Create(outputFile)
	if err != nil {
		return err
	}
	defer archive.Close()

	zipWriter := zip.NewWriter(archive)

	jobChan := make(chan tuple)
	doneChan := make(chan error, 1)

	// Spawn writer.
	go func() {
		doneChan <- bufferFlush(jobChan, zipWriter)
	}()

	written, failures := 0, 0
	gen := fuzzer.NewGenerator(
		func(result fuzzer.Result, hashSum string) error {
			if !result.Passed() {
				failures++
				reportFailure(output, result)
				return nil
			}

			written++
			jobChan <- tuple{
				kind:  result.Case.Kind.String(),
				hash:  hashSum,
				value: result.Case.Input,
			}
			return nil
		},
		options.seed,
		options.count,
		options.workers,
		options.verbose,
	)

	genErr := gen.Gen()
	close(jobChan)

	if err := <-doneChan; err != nil {
		return err
	}
	if genErr != nil {
		return genErr
	}

	if err := zipWriter.SetComment(fmt.Sprintf("rxlex fuzzing corpus, seed %d", options.seed)); err != nil {
		return err
	}
	if err := zipWriter.Close(); err != nil {
		return err
	}

	fmt.Fprintf(output, "Wrote %d cases to `%s`\n", written, outputFile)
	if failures > 0 {
		return fmt.Errorf("%d fuzzing cases failed and were not written", failures)
	}

	return nil
}
