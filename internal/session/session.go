// Package session tracks which project the user is currently working on,
// persisted in a small bbolt database so it survives between invocations.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "session"
	currentKey = "current"
)

// State is the persisted session state.
type State struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	ProjectDir  string    `json:"project_dir"`
	ActivatedAt time.Time `json:"activated_at"`
}

// Store persists session state in a bbolt file.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Activate makes the given project the current one and returns the new state.
func (s *Store) Activate(name, dir string) (*State, error) {
	state := &State{
		ID:          uuid.NewString(),
		ProjectName: name,
		ProjectDir:  dir,
		ActivatedAt: time.Now(),
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(state)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketName)).Put([]byte(currentKey), data)
	})
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return state, nil
}

// Current returns the active session state, or (nil, nil) when no project has
// been activated yet.
func (s *Store) Current() (*State, error) {
	var state *State
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(currentKey))
		if data == nil {
			return nil
		}
		state = &State{}
		return json.Unmarshal(data, state)
	})
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return state, nil
}

// Clear forgets the active project.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(currentKey))
	})
}
