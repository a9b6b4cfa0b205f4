package bolt

import (
	"bytes"
	"encoding/json"

	"github.com/boltdb/bolt"

	"github.com/Allan0411/Notes-API/collab"
)

// MembershipRepository stores memberships in a bolt database, keyed by
// the composite (note id, user id) so the pair is unique by
// construction.
type MembershipRepository struct {
	Driver *Driver
}

func (r *MembershipRepository) Get(noteID, userID int) (collab.Membership, error) {
	var m collab.Membership
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(membershipBucket).Get(pairKey(noteID, userID))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &m)
	})
	if err != nil {
		return collab.Membership{}, err
	}

	return m, nil
}

func (r *MembershipRepository) ListForNote(noteID int) ([]collab.Membership, error) {
	memberships := make([]collab.Membership, 0)

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(membershipBucket).Cursor()
		prefix := itob(noteID)
		for k, data := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, data = c.Next() {
			var m collab.Membership
			if err := json.Unmarshal(data, &m); err != nil {
				return err
			}
			memberships = append(memberships, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *MembershipRepository) NoteIDsForUser(userID int) ([]int, error) {
	ids := make([]int, 0)

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(membershipBucket).Cursor()
		for k, data := c.First(); k != nil; k, data = c.Next() {
			var m collab.Membership
			if err := json.Unmarshal(data, &m); err != nil {
				return err
			}
			if m.UserID == userID {
				ids = append(ids, m.NoteID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *MembershipRepository) Insert(m *collab.Membership) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(membershipBucket).Get(pairKey(m.NoteID, m.UserID)) != nil {
			return collab.ErrConflict
		}
		return putMembership(tx, *m)
	})
}

func (r *MembershipRepository) Update(m *collab.Membership) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(membershipBucket).Get(pairKey(m.NoteID, m.UserID)) == nil {
			return collab.ErrConflict
		}
		return putMembership(tx, *m)
	})
}

func (r *MembershipRepository) Delete(noteID, userID int) (bool, error) {
	deleted := false
	err := r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(membershipBucket)
		key := pairKey(noteID, userID)
		if bucket.Get(key) == nil {
			return nil
		}

		deleted = true
		return bucket.Delete(key)
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func (r *MembershipRepository) DeleteForNote(noteID int) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(membershipBucket).Cursor()
		prefix := itob(noteID)
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

// putMembership is the single write primitive both grant paths go
// through: direct adds (after their existence check) and invite
// acceptances (which overwrite: the membership must land whatever raced
// with the accept).
func putMembership(tx *bolt.Tx, m collab.Membership) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	return tx.Bucket(membershipBucket).Put(pairKey(m.NoteID, m.UserID), data)
}
