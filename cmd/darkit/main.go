/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Command darkit drives the archival pipeline from the shell: create,
// extract, list and diff archives made of numbered slice files.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	libmap "github.com/go-viper/mapstructure/v2"

	"github.com/nabbar/darkit/runtime"
)

var (
	vpr     = viper.New()
	verbose bool
	pipeFD  int
)

func main() {
	root := &cobra.Command{
		Use:           "darkit",
		Short:         "sliced, compressed, encrypted filesystem archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fl := root.PersistentFlags()
	fl.String("config", "", "configuration file (yaml/toml/json)")
	fl.Uint64("slice-size", 0, "slice size in bytes; 0 keeps a single file")
	fl.String("cipher", "aes256", "cipher algorithm (blowfish|aes256|twofish256)")
	fl.String("passphrase", "", "archive passphrase; empty disables encryption")
	fl.Int("pbkdf2-iterations", 0, "PBKDF2 iteration count; 0 keeps the default")
	fl.String("compression", "zstd", "compression algorithm (none|gzip|bzip2|xz|zstd|lz4)")
	fl.Int("compression-level", 0, "codec-specific level; 0 keeps the library default")
	fl.Int("workers", 1, "parallel compression workers")
	fl.Int("clear-block-size", 0, "cipher plaintext block size; 0 keeps the default")
	fl.Bool("hash-sidecars", false, "write a hash sidecar next to each slice")
	fl.StringSlice("fsa-scope", nil, "FSA families to capture/restore (l, h)")
	fl.String("slice-hook", "", "command run per finished slice; %-escapes expanded")
	fl.String("ext", "dk", "slice file extension")
	fl.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	fl.IntVar(&pipeFD, "pipe-fd", -1, "read the real argument list from this pipe fd")

	_ = vpr.BindPFlags(fl)
	vpr.SetEnvPrefix("DARKIT")
	vpr.AutomaticEnv()

	root.AddCommand(newCreateCmd(), newExtractCmd(), newListCmd(), newDiffCmd())

	// A parent process may hand the real argument list over a pipe
	// instead of the command line, keeping passphrases out of ps output.
	if args, ok := argsFromPipe(os.Args[1:]); ok {
		root.SetArgs(args)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "darkit:", err)
		os.Exit(1)
	}
}

// loadConfig decodes the merged flag/env/file configuration into a
// runtime.Config using the same decode hooks the library registers.
func loadConfig() (runtime.Config, error) {
	if f := vpr.GetString("config"); f != "" {
		vpr.SetConfigFile(f)
		if err := vpr.ReadInConfig(); err != nil {
			return runtime.Config{}, err
		}
	}

	cfg := runtime.DefaultConfig()
	dec, err := libmap.NewDecoder(&libmap.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		MatchName:        matchFlagName,
		DecodeHook: libmap.ComposeDecodeHookFunc(
			runtime.CipherDecoderHook(),
			runtime.CompressionDecoderHook(),
			runtime.FSAScopeDecoderHook(),
		),
	})
	if err != nil {
		return runtime.Config{}, err
	}
	if err := dec.Decode(vpr.AllSettings()); err != nil {
		return runtime.Config{}, err
	}
	return cfg, nil
}

// matchFlagName lets "slice-size" style flag keys decode into the
// snake_case mapstructure tags Config declares.
func matchFlagName(mapKey, fieldName string) bool {
	norm := func(s string) string {
		out := make([]byte, 0, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c == '-' || c == '_' {
				continue
			}
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			out = append(out, c)
		}
		return string(out)
	}
	return norm(mapKey) == norm(fieldName)
}

func newRuntime(cfg runtime.Config) *runtime.Runtime {
	lvl := logrus.InfoLevel
	if verbose {
		lvl = logrus.DebugLevel
	}
	log := runtime.NewLogger(os.Stderr, lvl)
	return runtime.New(
		runtime.WithLogger(log),
		runtime.WithConfig(cfg),
		runtime.WithUserInteraction(runtime.NewInteractive(os.Stdin, os.Stderr, int(os.Stdin.Fd()))),
	)
}
