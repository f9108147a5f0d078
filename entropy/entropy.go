// Package entropy implements the external "unpredictable seed bytes"
// collaborator spec §6 describes: `random_entropy(n_words) -> n_words
// u32`, with a fallback mode when the OS source is unavailable. The BRNG
// layer only ever depends on the Source interface being callable; this
// package supplies the concrete OS-backed and fallback implementations
// the teacher repo always shipped alongside its generators.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"os"
	"time"

	"github.com/randcore/brngkit/brng"
	"golang.org/x/crypto/chacha20"
)

// Source produces unpredictable 32-bit words.
type Source interface {
	Read(words []uint32) error
}

// OS reads entropy from crypto/rand.Reader, the platform's CSPRNG.
type OS struct{}

// Read fills words with little-endian 32-bit chunks from crypto/rand.
func (OS) Read(words []uint32) error {
	buf := make([]byte, 4*len(words))
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return brng.NewEntropyError("OS source unavailable: " + err.Error())
	}
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return nil
}

// ChaCha20Fallback streams a ChaCha20 keystream seeded from wall-clock
// time and the process id when the primary OS source is unavailable.
// This is not a cryptographic entropy source — it exists purely so seed
// acquisition degrades to *something* unpredictable-to-a-casual-observer
// rather than failing outright, mirroring the stream-cipher-as-PRNG
// pattern in sixafter/prng-chacha (see SPEC_FULL.md §4.7).
type ChaCha20Fallback struct{}

// Read fills words with a ChaCha20 keystream keyed from time+pid jitter.
func (ChaCha20Fallback) Read(words []uint32) error {
	var key [32]byte
	var nonce [12]byte

	now := time.Now().UnixNano()
	binary.LittleEndian.PutUint64(key[0:8], uint64(now))
	binary.LittleEndian.PutUint32(key[8:12], uint32(os.Getpid()))
	binary.LittleEndian.PutUint64(key[12:20], uint64(now)^0x9E3779B97F4A7C15)
	binary.LittleEndian.PutUint32(nonce[0:4], uint32(now>>32))

	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return brng.NewEntropyError("chacha20 fallback init failed: " + err.Error())
	}

	buf := make([]byte, 4*len(words))
	cipher.XORKeyStream(buf, buf)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return nil
}

// fallbackSource chains a primary Source and a fallback Source, trying
// the primary first.
type fallbackSource struct {
	primary  Source
	fallback Source
}

// WithFallback wraps primary so that a failed Read retries against
// fallback; if both fail, the ErrEntropy kind (spec §7.4) is returned.
func WithFallback(primary, fallback Source) Source {
	return fallbackSource{primary: primary, fallback: fallback}
}

func (f fallbackSource) Read(words []uint32) error {
	if err := f.primary.Read(words); err == nil {
		return nil
	}
	if err := f.fallback.Read(words); err != nil {
		return brng.NewEntropyError("primary and fallback entropy sources both failed")
	}
	return nil
}

// Default is the OS source backed by the ChaCha20 fallback. The
// NewFromEntropy constructors take their Source as an argument;
// cmd/brngtool passes Default to them when no seed is supplied.
var Default Source = WithFallback(OS{}, ChaCha20Fallback{})
