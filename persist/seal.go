package persist

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// Sealed blob layout: 16-byte scrypt salt, 24-byte secretbox nonce,
// then the box itself.
const (
	saltSize  = 16
	nonceSize = 24

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// SealedStore encrypts session blobs with a passphrase before handing
// them to the inner store. A wrong passphrase or tampered blob surfaces
// as a *SessionDecodeError, same as any other unreadable session.
type SealedStore struct {
	inner      Store
	passphrase []byte
	rand       io.Reader
}

// NewSealedStore wraps inner with passphrase sealing.
func NewSealedStore(inner Store, passphrase string) *SealedStore {
	return &SealedStore{inner: inner, passphrase: []byte(passphrase), rand: rand.Reader}
}

func (s *SealedStore) Save(key string, blob []byte) error {
	var salt [saltSize]byte
	if _, err := io.ReadFull(s.rand, salt[:]); err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	boxKey, err := s.deriveKey(salt[:])
	if err != nil {
		return err
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(s.rand, nonce[:]); err != nil {
		return fmt.Errorf("seal session: %w", err)
	}

	out := make([]byte, 0, saltSize+nonceSize+len(blob)+secretbox.Overhead)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, blob, &nonce, boxKey)
	return s.inner.Save(key, out)
}

func (s *SealedStore) Load(key string) ([]byte, error) {
	sealed, err := s.inner.Load(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < saltSize+nonceSize+secretbox.Overhead {
		return nil, &SessionDecodeError{Reason: "sealed blob truncated"}
	}
	boxKey, err := s.deriveKey(sealed[:saltSize])
	if err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[saltSize:saltSize+nonceSize])

	blob, ok := secretbox.Open(nil, sealed[saltSize+nonceSize:], &nonce, boxKey)
	if !ok {
		return nil, &SessionDecodeError{Reason: "wrong passphrase or corrupted blob"}
	}
	return blob, nil
}

func (s *SealedStore) deriveKey(salt []byte) (*[32]byte, error) {
	derived, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	var key [32]byte
	copy(key[:], derived)
	return &key, nil
}
