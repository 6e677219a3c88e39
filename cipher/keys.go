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

package cipher

import (
	stdcipher "crypto/cipher"
	"crypto/sha1"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/nabbar/darkit/errkind"
)

// DefaultIterations is the PBKDF2-HMAC-SHA1 iteration count used when the
// caller does not override it.
const DefaultIterations = 2000

// KeySchedule holds the two derived cipher.Block handles a block cipher
// stream needs: the main CBC key and the ESSIV key used only to produce
// per-block IVs.
type KeySchedule struct {
	algo      Algorithm
	main      stdcipher.Block
	essiv     stdcipher.Block
	blockSize int
}

// NewKeySchedule derives a KeySchedule from passphrase for algo under
// archive format version. iterations <= 0 selects DefaultIterations.
func NewKeySchedule(algo Algorithm, version Version, passphrase string, iterations int) (*KeySchedule, errkind.Error) {
	maxLen := algo.MaxKeyLen()
	if maxLen == 0 {
		return nil, errkind.New(errkind.KindFeatureUnavailable, source,
			algo.String()+" unavailable: no pack dependency implements it")
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	h1 := pbkdf2.Key([]byte(passphrase), nil, iterations, maxLen, sha1.New)

	main, e := newBlock(algo, h1)
	if e != nil {
		return nil, e
	}

	useAES := version.AtLeast(8, 1) && algo != AlgorithmBlowfish
	var k2 []byte
	var essivAlgo Algorithm
	if useAES {
		sum := sha256.Sum256(h1)
		k2 = sum[:]
		essivAlgo = AlgorithmAES256
	} else {
		sum := sha1.Sum(h1)
		k2 = sum[:]
		essivAlgo = AlgorithmBlowfish
	}

	essiv, e := newBlock(essivAlgo, k2)
	if e != nil {
		return nil, e
	}

	return &KeySchedule{algo: algo, main: main, essiv: essiv, blockSize: main.BlockSize()}, nil
}

// BlockSize returns the main cipher's block size in bytes (8 for blowfish,
// 16 for aes256/twofish256).
func (k *KeySchedule) BlockSize() int { return k.blockSize }

// iv derives the IV for clear-block index n: the main cipher's block size
// worth of big-endian block-index bytes, ECB-encrypted under the ESSIV
// key. When the ESSIV cipher's block is narrower than the main cipher's
// (a blowfish ESSIV key feeding a 16-byte-block main cipher on legacy
// archives), ECB simply runs once per ESSIV-sized chunk.
func (k *KeySchedule) iv(blockIndex uint64) []byte {
	plain := make([]byte, k.blockSize)
	for i := k.blockSize - 1; i >= 0 && blockIndex > 0; i-- {
		plain[i] = byte(blockIndex)
		blockIndex >>= 8
	}

	out := make([]byte, k.blockSize)
	ebs := k.essiv.BlockSize()
	for off := 0; off < k.blockSize; off += ebs {
		k.essiv.Encrypt(out[off:off+ebs], plain[off:off+ebs])
	}
	return out
}

func (k *KeySchedule) encrypter(blockIndex uint64) stdcipher.BlockMode {
	return stdcipher.NewCBCEncrypter(k.main, k.iv(blockIndex))
}

func (k *KeySchedule) decrypter(blockIndex uint64) stdcipher.BlockMode {
	return stdcipher.NewCBCDecrypter(k.main, k.iv(blockIndex))
}
