package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("secret-password")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinelErrors_MatchThroughWrapping(t *testing.T) {
	for _, sentinel := range []error{ErrorNotFound, ErrorValidation, ErrorAlreadyExists, ErrorUnauthorized, ErrTokenExpired} {
		wrapped := fmt.Errorf("layer: %w", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Fatalf("errors.Is failed for %v", sentinel)
		}
	}
	if errors.Is(ErrorNotFound, ErrorValidation) {
		t.Fatalf("distinct sentinels must not match")
	}
}
