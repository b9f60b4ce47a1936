package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const configName = ".rxlex"
const envPrefix = "RXLEX"

type settings struct {
	Color       string
	Lint        bool
	FuzzSeed    int64
	FuzzCount   uint
	FuzzWorkers uint
}

// loadSettings reads the optional config file and `RXLEX_*` environment variables.
// Without an explicit path, `.rxlex.{yaml,json,toml}` in the working directory is used if present.
func loadSettings(fs afero.Fs, path string) (settings, error) {
	v := viper.New()
	v.SetFs(fs)

	v.SetDefault("color", "auto")
	v.SetDefault("lint", true)
	v.SetDefault("fuzz.seed", 0)
	v.SetDefault("fuzz.count", 1000)
	v.SetDefault("fuzz.workers", runtime.NumCPU())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("could not read config: %w", err)
		}
	}

	return settings{
		Color:       v.GetString("color"),
		Lint:        v.GetBool("lint"),
		FuzzSeed:    v.GetInt64("fuzz.seed"),
		FuzzCount:   v.GetUint("fuzz.count"),
		FuzzWorkers: v.GetUint("fuzz.workers"),
	}, nil
}

func resolveColor(mode string, output io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		file, ok := output.(*os.File)
		return ok && term.IsTerminal(int(file.Fd())), nil
	default:
		return false, fmt.Errorf("Illegal color mode `%s`: Valid values are `auto`, `always` and `never`", mode)
	}
}
