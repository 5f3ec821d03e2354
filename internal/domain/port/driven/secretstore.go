package driven

import "errors"

// ErrKeyUnavailable is returned when the secret key file exists but cannot be
// read or is malformed. Nothing can be encrypted or decrypted without the key,
// so callers should treat this as fatal at startup.
var ErrKeyUnavailable = errors.New("secret key unavailable")

// ErrDecrypt is returned when a ciphertext cannot be decrypted (malformed
// input or key mismatch). It is a per-value condition: callers must treat the
// value as unusable, not abort the surrounding load.
var ErrDecrypt = errors.New("decryption failed")

// SecretStore defines the driven port for the process-wide symmetric
// encryption primitives. The key is created once, persisted, and reused for
// the life of the installation; it is never regenerated while present, since
// that would invalidate all existing ciphertext.
type SecretStore interface {
	// Encrypt returns a text-safe ciphertext for the given plaintext. Two
	// calls with the same plaintext produce different ciphertexts.
	Encrypt(plaintext string) (string, error)

	// Decrypt is the inverse of Encrypt. Errors wrap ErrDecrypt when the
	// ciphertext is malformed or was produced under a different key.
	Decrypt(ciphertext string) (string, error)
}
