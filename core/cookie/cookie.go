package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"slices"

	"golang.org/x/crypto/hkdf"
)

const (
	// MaxCookieSize is the maximum size for a cookie (4KB).
	MaxCookieSize = 4096
	// minSecretLength is the minimum secret length for key derivation.
	minSecretLength = 32
	// keyInfo binds derived keys to their use.
	keyInfo = "COOKIE;SIGNED:HMAC-SHA256;PRIVATE:AEAD-AES-256-GCM"
)

// keys holds the signing and encryption keys derived from one secret.
type keys struct {
	signing    []byte
	encryption []byte
}

// Manager creates per-request cookie jars sharing one set of defaults and keys.
// A Manager is immutable after construction and safe for concurrent use.
type Manager struct {
	keys     []keys // first entry signs/encrypts, all entries verify/decrypt
	defaults Options
	maxSize  int
}

// New creates a cookie manager. Secrets are optional: without them plain
// cookies work and signed or private cookies fail with ErrNoSecret.
// The first secret is used for new cookies; the rest are accepted when
// reading to support key rotation.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })

	derived := make([]keys, 0, len(secrets))
	for i, secret := range secrets {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secret), minSecretLength)
		}
		k, err := deriveKeys(secret)
		if err != nil {
			return nil, err
		}
		derived = append(derived, k)
	}

	// Secure defaults
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		keys:     derived,
		defaults: applyOptions(defaults, opts),
		maxSize:  MaxCookieSize,
	}, nil
}

// NewJar creates a jar seeded with the cookies sent in header.
func (m *Manager) NewJar(header http.Header) *Jar {
	return newJar(m, header)
}

// Defaults returns the attributes applied to added cookies.
func (m *Manager) Defaults() Options {
	return m.defaults
}

func deriveKeys(secret string) (keys, error) {
	buf := make([]byte, 64)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(r, buf); err != nil {
		return keys{}, fmt.Errorf("derive cookie keys: %w", err)
	}
	return keys{signing: buf[:32], encryption: buf[32:]}, nil
}

// sign prepends a base64 HMAC of name and value to value.
func (m *Manager) sign(name, value string) (string, error) {
	if len(m.keys) == 0 {
		return "", ErrNoSecret
	}
	return mac(m.keys[0].signing, name, value) + value, nil
}

// verify checks the HMAC prefix of signed against every key.
func (m *Manager) verify(name, signed string) (string, error) {
	if len(m.keys) == 0 {
		return "", ErrNoSecret
	}

	macLen := base64.RawURLEncoding.EncodedLen(sha256.Size)
	if len(signed) < macLen {
		return "", ErrInvalidFormat
	}

	digest, value := signed[:macLen], signed[macLen:]
	valid := slices.ContainsFunc(m.keys, func(k keys) bool {
		expected := mac(k.signing, name, value)
		return subtle.ConstantTimeCompare([]byte(digest), []byte(expected)) == 1
	})
	if !valid {
		return "", ErrInvalidSignature
	}
	return value, nil
}

func mac(key []byte, name, value string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// encrypt seals value with AES-256-GCM using the cookie name as associated data.
func (m *Manager) encrypt(name, value string) (string, error) {
	if len(m.keys) == 0 {
		return "", ErrNoSecret
	}

	gcm, err := newGCM(m.keys[0].encryption)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// decrypt opens a value sealed by encrypt, trying every key for rotation.
func (m *Manager) decrypt(name, encrypted string) (string, error) {
	if len(m.keys) == 0 {
		return "", ErrNoSecret
	}

	ciphertext, err := base64.RawURLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		gcm, err := newGCM(k.encryption)
		if err != nil {
			continue
		}
		if len(ciphertext) < gcm.NonceSize() {
			return "", ErrInvalidFormat
		}

		nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
		if plaintext, err := gcm.Open(nil, nonce, sealed, []byte(name)); err == nil {
			return string(plaintext), nil
		}
	}

	return "", ErrDecryptionFailed
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
