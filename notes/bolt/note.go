package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/Allan0411/Notes-API/notes"
)

// NoteRepository stores notes in a bolt database, one JSON document per
// note keyed by id.
type NoteRepository struct {
	driver *Driver
}

func NewNoteRepository(driver *Driver) *NoteRepository {
	return &NoteRepository{driver: driver}
}

func (r *NoteRepository) Get(id int) (notes.Note, error) {
	var note notes.Note
	err := r.driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(noteBucket).Get(itob(id))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &note)
	})
	if err != nil {
		return notes.Note{}, err
	}
	return note, nil
}

func (r *NoteRepository) List(ids []int) ([]notes.Note, error) {
	list := make([]notes.Note, 0, len(ids))
	err := r.driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(noteBucket)

		for _, id := range ids {
			data := bucket.Get(itob(id))
			if data == nil {
				continue
			}

			var note notes.Note
			if err := json.Unmarshal(data, &note); err != nil {
				return err
			}
			list = append(list, note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *NoteRepository) ListForCreator(creatorID int) ([]notes.Note, error) {
	var list []notes.Note
	err := r.driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(noteBucket).Cursor()
		for k, data := c.First(); k != nil; k, data = c.Next() {
			var note notes.Note
			if err := json.Unmarshal(data, &note); err != nil {
				return err
			}
			if note.CreatorUserID == creatorID {
				list = append(list, note)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *NoteRepository) Upsert(n *notes.Note) error {
	return r.driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(noteBucket)

		if n.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			n.ID = int(id)
		}

		data, err := json.Marshal(n)
		if err != nil {
			return err
		}
		return bucket.Put(itob(n.ID), data)
	})
}

func (r *NoteRepository) Delete(id int) (bool, error) {
	deleted := false
	err := r.driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(noteBucket)
		if bucket.Get(itob(id)) == nil {
			return nil
		}
		deleted = true
		return bucket.Delete(itob(id))
	})
	return deleted, err
}

// itob returns an 8-byte big endian representation of v.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
