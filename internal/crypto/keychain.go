// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"

	"github.com/MKhiriev/passgate/models"
)

const (
	// KeySize is the AES-256 key length.
	KeySize = 32
	// NonceSize is the GCM IV length (96 bits).
	NonceSize = 12
	// TagSize is the GCM authentication tag length (128 bits).
	TagSize = 16
	// SaltSize is the length of generated KDF salts.
	SaltSize = 16

	// MinDeviceKeyIterations is the lowest PBKDF2 iteration count accepted
	// for the device storage key.
	MinDeviceKeyIterations = 100_000
)

var (
	ErrInvalidKeyLength    = errors.New("invalid key length")
	ErrInvalidNonceLength  = errors.New("invalid nonce length")
	ErrCiphertextTooShort  = errors.New("ciphertext too short")
	ErrDecryptionFailed    = errors.New("decryption failed")
	ErrInvalidKDFParams    = errors.New("invalid kdf params")
	ErrSignatureMismatch   = errors.New("signature mismatch")
	ErrRandomSourceFailure = errors.New("random source failure")
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	random io.Reader
}

// NewKeyChainService constructs a [KeyChainService] reading randomness from
// crypto/rand.
func NewKeyChainService() KeyChainService {
	return &keyChainService{random: rand.Reader}
}

// RandomBytes implements [KeyChainService].
func (k *keyChainService) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(k.random, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSourceFailure, err)
	}
	return b, nil
}

// DeriveDeviceKey implements [KeyChainService]. Iteration counts below
// [MinDeviceKeyIterations] are raised to it.
func (k *keyChainService) DeriveDeviceKey(fingerprint string, salt []byte, iterations int) []byte {
	if iterations < MinDeviceKeyIterations {
		iterations = MinDeviceKeyIterations
	}
	return pbkdf2.Key([]byte(fingerprint), salt, iterations, KeySize, sha256.New)
}

// DerivePassphraseKey implements [KeyChainService].
func (k *keyChainService) DerivePassphraseKey(passphrase string, salt []byte, params models.KDFParams) ([]byte, error) {
	if params.TimeCost == 0 || params.Parallelism == 0 || params.MemoryCost < 8*uint32(params.Parallelism) {
		return nil, ErrInvalidKDFParams
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrInvalidKDFParams)
	}
	keyLen := params.KeyLength
	if keyLen == 0 {
		keyLen = KeySize
	}

	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		params.TimeCost,
		params.MemoryCost,
		params.Parallelism,
		keyLen,
	), nil
}

// DeriveSubkey implements [KeyChainService].
func (k *keyChainService) DeriveSubkey(key []byte, info string, length int) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrInvalidKeyLength
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(info)), out); err != nil {
		return nil, fmt.Errorf("derive subkey: %w", err)
	}
	return out, nil
}

// Seal implements [KeyChainService].
func (k *keyChainService) Seal(key, plaintext []byte) ([]byte, []byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce, err := k.RandomBytes(gcm.NonceSize())
	if err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	return nonce, gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Open implements [KeyChainService]. An error here almost always means a
// wrong key (wrong passphrase or changed device) or a corrupted entry.
func (k *keyChainService) Open(key, iv, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != gcm.NonceSize() {
		return nil, ErrInvalidNonceLength
	}
	if len(ciphertext) < gcm.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// Sign implements [KeyChainService] using the HS256 signing method of
// golang-jwt so token signatures match what any JWT tooling would compute.
func (k *keyChainService) Sign(key []byte, data string) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrInvalidKeyLength
	}
	sig, err := jwt.SigningMethodHS256.Sign(data, key)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig, nil
}

// Verify implements [KeyChainService]. The comparison is hmac.Equal, which
// does not short-circuit on the first differing byte.
func (k *keyChainService) Verify(key []byte, data string, sig []byte) error {
	if len(key) == 0 {
		return ErrInvalidKeyLength
	}
	if err := jwt.SigningMethodHS256.Verify(data, sig, key); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureMismatch, err)
	}
	return nil
}

// Digest implements [KeyChainService].
func (k *keyChainService) Digest(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// Zero overwrites b with zeros in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyLength, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
