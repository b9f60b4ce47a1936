package main

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/smarthome-go/rxlex/rxlex/fuzzer"
)

func readZipEntry(entry *zip.File) (string, error) {
	reader, err := entry.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	return string(content), nil
}

// validateFuzzDB re-checks every case of a corpus written by `fuzz gen`.
func validateFuzzDB(env *environment, output io.Writer, filename string) error {
	file, err := env.fs.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	archive, err := zip.NewReader(file, stat.Size())
	if err != nil {
		return err
	}

	successCnt, errsCnt := 0, 0

	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		kindName, _, found := strings.Cut(entry.Name, "/")
		kind, known := fuzzer.ParseCaseKind(kindName)
		if !found || !known {
			return fmt.Errorf("Illegal corpus entry `%s`", entry.Name)
		}

		content, err := readZipEntry(entry)
		if err != nil {
			return err
		}

		input := fuzzer.Case{Kind: kind, Input: content}
		if failure := fuzzer.Check(input); failure != "" {
			errsCnt++
			reportFailure(output, fuzzer.Result{Case: input, Failure: failure})
			continue
		}

		successCnt++
	}

	fmt.Fprintf(output, "Validated %d cases: %d ok, %d broken\n", successCnt+errsCnt, successCnt, errsCnt)
	if errsCnt > 0 {
		return fmt.Errorf("%d cases of `%s` are broken", errsCnt, filename)
	}

	return nil
}
