package crypto

import "github.com/MKhiriev/passgate/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every cryptographic primitive passgate uses. It knows
// nothing about storage, sessions or users; callers pass keys in and get
// bytes out.
//
// Key hierarchy:
//
//	deviceKey  = PBKDF2-SHA256(fingerprint, deviceSalt, 100k)   secure storage
//	masterKey  = Argon2id(passphrase, salt, KDFParams)          login proof
//	signingKey = HKDF-SHA256(masterKey, "passgate session...")  session tokens
type KeyChainService interface {
	// RandomBytes reads n bytes from the OS CSPRNG.
	RandomBytes(n int) ([]byte, error)

	// DeriveDeviceKey derives the 256-bit secure-storage key from the device
	// fingerprint and the persisted device salt using PBKDF2-HMAC-SHA256.
	DeriveDeviceKey(fingerprint string, salt []byte, iterations int) []byte

	// DerivePassphraseKey derives the master key from a passphrase with
	// Argon2id using the memory/time/parallelism shape of params.
	DerivePassphraseKey(passphrase string, salt []byte, params models.KDFParams) ([]byte, error)

	// DeriveSubkey expands key into a purpose-bound subkey with HKDF-SHA256.
	DeriveSubkey(key []byte, info string, length int) ([]byte, error)

	// Seal encrypts plaintext with AES-256-GCM under a fresh random 96-bit
	// IV. The returned ciphertext carries the 128-bit tag at its end.
	Seal(key, plaintext []byte) (iv, ciphertext []byte, err error)

	// Open authenticates and decrypts ciphertext‖tag. Any tampering, wrong
	// key or wrong IV yields an error.
	Open(key, iv, ciphertext []byte) ([]byte, error)

	// Sign computes an HMAC-SHA256 signature of data.
	Sign(key []byte, data string) ([]byte, error)

	// Verify checks sig against data in constant time.
	Verify(key []byte, data string, sig []byte) error

	// Digest returns the hex SHA-256 of data.
	Digest(data string) string
}
