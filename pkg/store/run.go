package store

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	. "src.simple-lang.dev/pkg/store/storedefs"
)

const bucketRun = "run"

func init() {
	initDB["initialize run history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRun))
		return err
	}
}

// NextRunSeq returns the next sequence number of the run history.
func (s *dbStore) NextRunSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddRun adds a new run to the run history. It fills in the ID if it is empty
// and the time if it is zero, and returns the sequence number of the run.
func (s *dbStore) AddRun(run Run) (int, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Time.IsZero() {
		run.Time = time.Now()
	}
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(run)
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	if err != nil {
		return 0, err
	}
	logger.Printf("added run %d (%s) of %s", seq, run.ID, run.File)
	return int(seq), nil
}

// DelRun deletes a run with the given sequence number.
func (s *dbStore) DelRun(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

// Run queries the run with the specified sequence number.
func (s *dbStore) Run(seq int) (Run, error) {
	var run Run
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingRun
		}
		var err error
		run, err = unmarshalRun(seq, v)
		return err
	})
	return run, err
}

// RunsWithSeq returns all runs with sequence numbers in [from, upto).
func (s *dbStore) RunsWithSeq(from, upto int) ([]Run, error) {
	var runs []Run
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			run, err := unmarshalRun(int(unmarshalSeq(k)), v)
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})
	return runs, err
}

func unmarshalRun(seq int, data []byte) (Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, err
	}
	run.Seq = seq
	return run, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
