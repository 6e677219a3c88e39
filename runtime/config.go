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

package runtime

import (
	"reflect"

	libmap "github.com/go-viper/mapstructure/v2"

	"github.com/nabbar/darkit/cipher"
	"github.com/nabbar/darkit/compress"
	"github.com/nabbar/darkit/fsa"
)

// Config is the decoded set of knobs a create/extract run is driven by.
// It is the Viper-unmarshal target for cmd/darkit's flags and config
// file, in the same spirit as golib's file/perm.Perm decode hooks.
type Config struct {
	SliceSize    uint64         `mapstructure:"slice_size"`
	SliceHook    string         `mapstructure:"slice_hook"`
	Cipher       cipher.Algorithm `mapstructure:"cipher"`
	Passphrase   string         `mapstructure:"passphrase"`
	Iterations   int            `mapstructure:"pbkdf2_iterations"`
	Compression  compress.Algorithm `mapstructure:"compression"`
	Level        int            `mapstructure:"compression_level"`
	Workers      int            `mapstructure:"workers"`
	ClearBlock   int            `mapstructure:"clear_block_size"`
	FSAScope     fsa.Scope      `mapstructure:"fsa_scope"`
	HashSidecars bool           `mapstructure:"hash_sidecars"`
}

// DefaultConfig returns the baseline Config a bare Runtime starts from:
// no slicing, AES-256, zstd at its default level, one worker, the
// default PBKDF2 iteration count, and no FSA capture.
func DefaultConfig() Config {
	return Config{
		SliceSize:   0,
		Cipher:      cipher.AlgorithmAES256,
		Iterations:  cipher.DefaultIterations,
		Compression: compress.AlgorithmZstd,
		Level:       0,
		Workers:     1,
		ClearBlock:  1 << 20,
	}
}

// CipherDecoderHook converts a string cipher name ("aes256", "blowfish",
// ...) into a cipher.Algorithm during Viper/mapstructure decoding.
func CipherDecoderHook() libmap.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var z cipher.Algorithm
		if from.Kind() != reflect.String || to != reflect.TypeOf(z) {
			return data, nil
		}
		s, _ := data.(string)
		switch s {
		case "blowfish":
			return cipher.AlgorithmBlowfish, nil
		case "aes256":
			return cipher.AlgorithmAES256, nil
		case "twofish256":
			return cipher.AlgorithmTwofish256, nil
		case "serpent256":
			return cipher.AlgorithmSerpent256, nil
		case "camellia256":
			return cipher.AlgorithmCamellia256, nil
		default:
			return cipher.AlgorithmAES256, nil
		}
	}
}

// CompressionDecoderHook converts a string codec name ("gzip", "zstd",
// ...) into a compress.Algorithm during Viper/mapstructure decoding.
func CompressionDecoderHook() libmap.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var z compress.Algorithm
		if from.Kind() != reflect.String || to != reflect.TypeOf(z) {
			return data, nil
		}
		s, _ := data.(string)
		switch s {
		case "none":
			return compress.AlgorithmNone, nil
		case "gzip":
			return compress.AlgorithmGzip, nil
		case "bzip2":
			return compress.AlgorithmBzip2, nil
		case "lzo":
			return compress.AlgorithmLZO, nil
		case "xz":
			return compress.AlgorithmXZ, nil
		case "zstd":
			return compress.AlgorithmZstd, nil
		case "lz4":
			return compress.AlgorithmLZ4, nil
		default:
			return compress.AlgorithmZstd, nil
		}
	}
}

// FSAScopeDecoderHook converts a list of single-letter family codes
// (e.g. []string{"l", "h"}) into an fsa.Scope during Viper decoding.
func FSAScopeDecoderHook() libmap.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var z fsa.Scope
		if to != reflect.TypeOf(z) {
			return data, nil
		}
		var names []string
		switch raw := data.(type) {
		case []string:
			names = raw
		case []interface{}:
			for _, v := range raw {
				if s, k := v.(string); k {
					names = append(names, s)
				}
			}
		default:
			return data, nil
		}
		families := make([]fsa.Family, 0, len(names))
		for _, s := range names {
			if len(s) > 0 {
				families = append(families, fsa.Family(s[0]))
			}
		}
		return fsa.NewScope(families...), nil
	}
}
