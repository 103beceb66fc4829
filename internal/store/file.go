package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// fileStore keeps entries in a single JSON document. Every operation
// re-reads the document under an advisory lock on path+".lock" and
// mutations rewrite it before the lock is released, so several passgate
// processes sharing one file only ever race on the same key.
type fileStore struct {
	path  string
	lock  *flock.Flock
	quota int64

	mu     sync.Mutex
	closed bool
}

type filePersistedState struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

const filePersistedVersion = 1

// NewFileStore opens (or lazily creates) the JSON store at path. A positive
// quota limits the total size of keys plus values in bytes.
func NewFileStore(path string, quota int64) (KeyValueStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	s := &fileStore{
		path:  path,
		lock:  flock.New(path + ".lock"),
		quota: quota,
	}
	// fail early on an unreadable document
	if err := s.read(func(map[string]string) error { return nil }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() (map[string]string, error) {
	items := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return items, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(data) == 0 {
		return items, nil
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode store file: %w", err)
	}
	if st.Entries != nil {
		items = st.Entries
	}
	return items, nil
}

func (s *fileStore) persist(items map[string]string) error {
	payload, err := json.MarshalIndent(filePersistedState{Version: filePersistedVersion, Entries: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// read runs fn over the current document under a shared lock.
func (s *fileStore) read(fn func(items map[string]string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("lock store file: %w", err)
	}
	defer s.lock.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	return fn(items)
}

// update runs fn over the current document under an exclusive lock and
// writes the result back when fn reports a change.
func (s *fileStore) update(fn func(items map[string]string) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock store file: %w", err)
	}
	defer s.lock.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	changed, err := fn(items)
	if err != nil || !changed {
		return err
	}
	return s.persist(items)
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	var value string
	err := s.read(func(items map[string]string) error {
		v, ok := items[key]
		if !ok {
			return ErrKeyNotFound
		}
		value = v
		return nil
	})
	return value, err
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	return s.update(func(items map[string]string) (bool, error) {
		if s.quota > 0 {
			var used int64
			for k, v := range items {
				if k != key {
					used += entrySize(k, v)
				}
			}
			if used+entrySize(key, value) > s.quota {
				return false, ErrQuotaExceeded
			}
		}
		items[key] = value
		return true, nil
	})
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	return s.update(func(items map[string]string) (bool, error) {
		if _, ok := items[key]; !ok {
			return false, nil
		}
		delete(items, key)
		return true, nil
	})
}

func (s *fileStore) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.read(func(items map[string]string) error {
		keys = make([]string, 0, len(items))
		for k := range items {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		return nil
	})
	return keys, err
}

func (s *fileStore) Clear(_ context.Context) error {
	return s.update(func(items map[string]string) (bool, error) {
		clear(items)
		return true, nil
	})
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
