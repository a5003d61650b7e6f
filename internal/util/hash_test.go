package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	got := Fingerprint([]byte("hello"))

	assert.Equal(t, "sha256_2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", got)
}

func TestFingerprint_DistinguishesContent(t *testing.T) {
	assert.NotEqual(t, Fingerprint([]byte("a")), Fingerprint([]byte("b")))
	assert.Equal(t, Fingerprint(nil), Fingerprint([]byte{}))
}
