// Package file implements a credential store kept in a local JSON file,
// optionally sealed with XChaCha20-Poly1305 under a key derived from a secret.
package file

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

const (
	formatVersion = 1
	saltSize      = 16
	hkdfInfo      = "ecowallet credentials v1"
)

// document is the on-disk layout. Exactly one of Entries or Sealed is set.
type document struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries,omitempty"`
	Salt    []byte            `json:"salt,omitempty"`
	Nonce   []byte            `json:"nonce,omitempty"`
	Sealed  []byte            `json:"sealed,omitempty"`
}

// Store keeps credentials in a single file with 0600 permissions.
// Every operation reads and rewrites the file so concurrent processes see
// each other's writes.
type Store struct {
	path   string
	secret []byte
	mu     sync.Mutex
	log    *slog.Logger
}

// New creates a Store at path. An empty secret stores entries in plaintext.
func New(path, secret string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("credstore/file: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("credstore/file: create dir: %w", err)
	}

	s := &Store{path: path, log: logger.With("adapter", "credstore_file")}
	if secret != "" {
		s.secret = []byte(secret)
	} else {
		s.log.Warn("credential file is not encrypted", slog.String("path", path))
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("credential %s: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[key] = value
	return s.save(entries)
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	changed := false
	for _, k := range keys {
		if _, ok := entries[k]; ok {
			delete(entries, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(entries)
}

func (s *Store) Close() error { return nil }

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("credstore/file: read: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("credstore/file: decode: %w", err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("credstore/file: unsupported version %d", doc.Version)
	}

	if doc.Sealed == nil {
		if doc.Entries == nil {
			doc.Entries = make(map[string]string)
		}
		if s.secret != nil && len(doc.Entries) > 0 {
			if err := s.save(doc.Entries); err != nil {
				return nil, fmt.Errorf("credstore/file: seal plaintext file: %w", err)
			}
			s.log.Warn("re-encrypted plaintext credential file", slog.String("path", s.path))
		}
		return doc.Entries, nil
	}

	if s.secret == nil {
		return nil, fmt.Errorf("credstore/file: file is encrypted but no secret is configured")
	}
	aead, err := s.cipher(doc.Salt)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, doc.Nonce, doc.Sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("credstore/file: decrypt: %w", err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(plain, &entries); err != nil {
		return nil, fmt.Errorf("credstore/file: decode entries: %w", err)
	}
	return entries, nil
}

func (s *Store) save(entries map[string]string) error {
	doc := document{Version: formatVersion}

	if s.secret == nil {
		doc.Entries = entries
	} else {
		plain, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("credstore/file: encode entries: %w", err)
		}
		doc.Salt = make([]byte, saltSize)
		if _, err := rand.Read(doc.Salt); err != nil {
			return fmt.Errorf("credstore/file: salt: %w", err)
		}
		aead, err := s.cipher(doc.Salt)
		if err != nil {
			return err
		}
		doc.Nonce = make([]byte, aead.NonceSize())
		if _, err := rand.Read(doc.Nonce); err != nil {
			return fmt.Errorf("credstore/file: nonce: %w", err)
		}
		doc.Sealed = aead.Seal(nil, doc.Nonce, plain, nil)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("credstore/file: encode: %w", err)
	}
	return writeAtomic(s.path, data)
}

// cipher derives the file key from the secret and salt.
func (s *Store) cipher(salt []byte) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, s.secret, salt, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("credstore/file: derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("credstore/file: cipher: %w", err)
	}
	return aead, nil
}

// writeAtomic replaces path with data via a temp file and rename.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("credstore/file: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("credstore/file: chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("credstore/file: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("credstore/file: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("credstore/file: rename: %w", err)
	}
	return nil
}
