package persist

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"golang.org/x/crypto/scrypt"

	"github.com/jvgags/Poe-Write/internal/domain"
)

// Blob layout: salt || nonce || ciphertext. A fresh salt per write means
// the same passphrase never produces the same key stream twice.
const saltSize = 16

// scrypt parameters sized for an interactive save, not a server login.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

func deriveKey(passphrase string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, &domain.PersistenceError{Message: "derive key: " + err.Error()}
	}
	return key, nil
}

// encryptBlob seals plaintext with AES-256-GCM under a key derived from
// the passphrase.
func encryptBlob(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, &domain.PersistenceError{Message: "generate salt: " + err.Error()}
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &domain.PersistenceError{Message: "init cipher: " + err.Error()}
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, &domain.PersistenceError{Message: "init gcm: " + err.Error()}
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, &domain.PersistenceError{Message: "generate nonce: " + err.Error()}
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// decryptBlob opens a blob produced by encryptBlob. A wrong passphrase or
// a truncated file both fail authentication and come back as a
// PersistenceError; in-memory state is never touched by a failed load.
func decryptBlob(passphrase string, blob []byte) ([]byte, error) {
	if len(blob) < saltSize {
		return nil, &domain.PersistenceError{Message: "state blob too short"}
	}
	salt, rest := blob[:saltSize], blob[saltSize:]
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &domain.PersistenceError{Message: "init cipher: " + err.Error()}
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, &domain.PersistenceError{Message: "init gcm: " + err.Error()}
	}
	if len(rest) < gcm.NonceSize() {
		return nil, &domain.PersistenceError{Message: "state blob too short"}
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, &domain.PersistenceError{Message: "decrypt state: wrong passphrase or corrupted blob"}
	}
	return plaintext, nil
}
