package entropy

import (
	"errors"
	"testing"
)

type alwaysFails struct{}

func (alwaysFails) Read([]uint32) error {
	return errors.New("source unavailable")
}

func TestOSReadsFullWords(t *testing.T) {
	var words [4]uint32
	if err := (OS{}).Read(words[:]); err != nil {
		t.Fatalf("OS.Read: %v", err)
	}
	// Extremely unlikely that crypto/rand returns four all-zero words.
	allZero := true
	for _, w := range words {
		if w != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Fatal("OS.Read returned all-zero words")
	}
}

func TestChaCha20FallbackProducesWords(t *testing.T) {
	var words [4]uint32
	if err := (ChaCha20Fallback{}).Read(words[:]); err != nil {
		t.Fatalf("ChaCha20Fallback.Read: %v", err)
	}
}

func TestWithFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	src := WithFallback(ChaCha20Fallback{}, alwaysFails{})
	var words [2]uint32
	if err := src.Read(words[:]); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestWithFallbackFallsBackOnPrimaryFailure(t *testing.T) {
	src := WithFallback(alwaysFails{}, ChaCha20Fallback{})
	var words [2]uint32
	if err := src.Read(words[:]); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestWithFallbackErrorsWhenBothFail(t *testing.T) {
	src := WithFallback(alwaysFails{}, alwaysFails{})
	var words [2]uint32
	if err := src.Read(words[:]); err == nil {
		t.Fatal("expected entropy failure when both sources fail")
	}
}
