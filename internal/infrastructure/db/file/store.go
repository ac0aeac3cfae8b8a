// Package file persists session credentials in a JSON document on the local
// disk. Values can optionally be sealed with a passphrase.
package file

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

const (
	formatVersion = 1
	saltSize      = 16
	nonceSize     = 24
	keySize       = 32

	// scrypt cost parameters recommended for interactive logins.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// document is the on-disk layout.
type document struct {
	Version int               `json:"version"`
	Sealed  bool              `json:"sealed"`
	Salt    string            `json:"salt,omitempty"`
	Entries map[string]string `json:"entries"`
}

// Store is a ports.CredentialStore backed by a single file. It is safe for
// concurrent use within one process.
type Store struct {
	path       string
	passphrase []byte

	mu      sync.Mutex
	key     *[keySize]byte
	keySalt string
}

// New returns a store writing to path. A non-empty passphrase seals every
// value with NaCl secretbox under a key derived with scrypt.
func New(path, passphrase string) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}
	s := &Store{path: path}
	if passphrase != "" {
		s.passphrase = []byte(passphrase)
	}
	return s, nil
}

// Path reports the file the store writes to.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}
	raw, ok := doc.Entries[key]
	if !ok {
		return "", domain.ErrCredentialNotFound
	}
	if !doc.Sealed {
		return raw, nil
	}
	return s.open(doc, key, raw)
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if errors.Is(err, domain.ErrCorruptSession) {
		doc = s.fresh()
	} else if err != nil {
		return err
	}
	if doc.Sealed != (s.passphrase != nil) {
		// The passphrase changed since the file was written; existing values
		// can no longer be read consistently.
		doc = s.fresh()
	}

	stored := value
	if doc.Sealed {
		if stored, err = s.seal(doc, value); err != nil {
			return err
		}
	}
	doc.Entries[key] = stored
	return s.write(doc)
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if errors.Is(err, domain.ErrCorruptSession) {
		return s.remove()
	}
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(doc.Entries, k)
	}
	if len(doc.Entries) == 0 {
		return s.remove()
	}
	return s.write(doc)
}

func (s *Store) fresh() *document {
	return &document{Version: formatVersion, Sealed: s.passphrase != nil, Entries: map[string]string{}}
}

func (s *Store) load() (*document, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.fresh(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSession, err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptSession, doc.Version)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]string{}
	}
	return &doc, nil
}

func (s *Store) write(doc *document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *Store) remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// derive returns the sealing key for doc, creating the salt on first use.
func (s *Store) derive(doc *document) (*[keySize]byte, error) {
	if doc.Salt == "" {
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		doc.Salt = base64.StdEncoding.EncodeToString(salt)
	}
	if s.key != nil && s.keySalt == doc.Salt {
		return s.key, nil
	}
	salt, err := base64.StdEncoding.DecodeString(doc.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: bad salt", domain.ErrCorruptSession)
	}
	dk, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	var key [keySize]byte
	copy(key[:], dk)
	s.key, s.keySalt = &key, doc.Salt
	return s.key, nil
}

func (s *Store) seal(doc *document, value string) (string, error) {
	key, err := s.derive(doc)
	if err != nil {
		return "", err
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(value), &nonce, key)
	return base64.StdEncoding.EncodeToString(box), nil
}

func (s *Store) open(doc *document, name, raw string) (string, error) {
	if s.passphrase == nil {
		return "", fmt.Errorf("%w: %s is sealed and no passphrase is configured", domain.ErrCorruptSession, name)
	}
	key, err := s.derive(doc)
	if err != nil {
		return "", err
	}
	box, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: %s is malformed", domain.ErrCorruptSession, name)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, key)
	if !ok {
		return "", fmt.Errorf("%w: %s cannot be unsealed", domain.ErrCorruptSession, name)
	}
	return string(plain), nil
}
