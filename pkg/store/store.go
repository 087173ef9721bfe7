// Package store persists the command history of the shell in a bolt
// database. Only recording and retrieval are provided; the line editor
// itself does not navigate history.
package store

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketCmd = "cmd"

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}

// Store allows access to the command history.
type Store interface {
	// NextCmdSeq returns the sequence number the next added command will
	// get.
	NextCmdSeq() (int, error)
	// AddCmd adds a new command to the history and returns its sequence
	// number.
	AddCmd(text string) (int, error)
	// CmdsWithSeq returns all commands with sequence numbers in the range
	// [from, upto).
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	// Close closes the database. The Store may not be used afterwards.
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens a Store backed by the named file, creating it if needed.
func NewStore(fname string) (Store, error) {
	db, err := bolt.Open(fname, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize command history: %w", err)
	}
	return &dbStore{db}, nil
}

func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketCmd)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

func (s *dbStore) AddCmd(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, Cmd{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return cmds, err
}

func (s *dbStore) Close() error {
	return s.db.Close()
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
