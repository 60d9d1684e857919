package evidence

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"modernc.org/kv"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/transcript"
)

// KVStore is a Store backed by modernc.org/kv, an ordered on-disk key-value
// database, for evidence sets too large to hold resident in memory.
// Grounded on kortschak-ins/internal/store, which uses the same package to
// index BLAST hits by a binary-encoded key.
type KVStore struct {
	junctions *kv.DB
	orfs      *kv.DB
	hits      *kv.DB
}

// OpenKVStore opens (or creates, if absent) the three kv databases backing
// a KVStore at the given directory-relative paths.
func OpenKVStore(junctionsPath, orfsPath, hitsPath string) (*KVStore, error) {
	opts := &kv.Options{}
	junctions, err := openOrCreate(junctionsPath, opts)
	if err != nil {
		return nil, errs.Wrap(errs.IOError, err, "opening junctions db")
	}
	orfs, err := openOrCreate(orfsPath, opts)
	if err != nil {
		return nil, errs.Wrap(errs.IOError, err, "opening orfs db")
	}
	hits, err := openOrCreate(hitsPath, opts)
	if err != nil {
		return nil, errs.Wrap(errs.IOError, err, "opening hits db")
	}
	return &KVStore{junctions: junctions, orfs: orfs, hits: hits}, nil
}

func openOrCreate(path string, opts *kv.Options) (*kv.DB, error) {
	db, err := kv.Open(path, opts)
	if err == nil {
		return db, nil
	}
	return kv.Create(path, opts)
}

// Close releases the underlying kv databases.
func (s *KVStore) Close() error {
	var firstErr error
	for _, db := range []*kv.DB{s.junctions, s.orfs, s.hits} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func junctionKeyBytes(key JunctionKey) []byte {
	return []byte(fmt.Sprintf("%s\x00%d\x00%d\x00%s", key.Chrom, key.Start, key.End, key.Strand))
}

// PutJunction records a verified junction.
func (s *KVStore) PutJunction(key JunctionKey) error {
	return s.junctions.Set(junctionKeyBytes(key), []byte{1})
}

// PutORFs records the candidate ORFs for a transcript ID.
func (s *KVStore) PutORFs(transcriptID string, orfs []transcript.CandidateORF) error {
	buf, err := encodeGob(orfs)
	if err != nil {
		return err
	}
	return s.orfs.Set([]byte(transcriptID), buf)
}

// PutHits records the BLAST hits for a transcript ID.
func (s *KVStore) PutHits(transcriptID string, hits []transcript.BlastHit) error {
	buf, err := encodeGob(hits)
	if err != nil {
		return err
	}
	return s.hits.Set([]byte(transcriptID), buf)
}

func (s *KVStore) Verified(key JunctionKey) bool {
	v, err := s.junctions.Get(nil, junctionKeyBytes(key))
	return err == nil && len(v) > 0
}

func (s *KVStore) ORFsFor(transcriptID string) ([]transcript.CandidateORF, error) {
	v, err := s.orfs.Get(nil, []byte(transcriptID))
	if err != nil {
		return nil, errs.Wrap(errs.EvidenceUnavailable, err, "reading ORFs for "+transcriptID)
	}
	if len(v) == 0 {
		return nil, nil
	}
	var out []transcript.CandidateORF
	if err := decodeGob(v, &out); err != nil {
		return nil, errs.Wrap(errs.EvidenceUnavailable, err, "decoding ORFs for "+transcriptID)
	}
	return out, nil
}

func (s *KVStore) HitsFor(transcriptID string) ([]transcript.BlastHit, error) {
	v, err := s.hits.Get(nil, []byte(transcriptID))
	if err != nil {
		return nil, errs.Wrap(errs.EvidenceUnavailable, err, "reading BLAST hits for "+transcriptID)
	}
	if len(v) == 0 {
		return nil, nil
	}
	var out []transcript.BlastHit
	if err := decodeGob(v, &out); err != nil {
		return nil, errs.Wrap(errs.EvidenceUnavailable, err, "decoding BLAST hits for "+transcriptID)
	}
	return out, nil
}

func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

var _ Store = (*KVStore)(nil)
