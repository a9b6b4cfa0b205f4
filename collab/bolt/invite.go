package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/Allan0411/Notes-API/collab"
)

// InviteRepository stores the invite ledger in a bolt database. The
// invites are kept by id in inviteBucket, and a second bucket indexes
// them by (note id, invited user id) so the pair uniqueness can be
// enforced inside the same write transaction as the invite itself.
type InviteRepository struct {
	Driver *Driver
}

func (r *InviteRepository) Get(id int) (collab.Invite, error) {
	var invite collab.Invite
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(inviteBucket).Get(itob(id))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &invite)
	})
	if err != nil {
		return collab.Invite{}, err
	}

	return invite, nil
}

func (r *InviteRepository) GetByNoteAndUser(noteID, userID int) (collab.Invite, error) {
	var invite collab.Invite
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		invite = pairInvite(tx, noteID, userID)
		return nil
	})
	if err != nil {
		return collab.Invite{}, err
	}

	return invite, nil
}

func (r *InviteRepository) PendingForUser(userID int) ([]collab.Invite, error) {
	invites := make([]collab.Invite, 0)

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(inviteBucket).Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var invite collab.Invite
			if err := json.Unmarshal(data, &invite); err != nil {
				return err
			}

			if invite.InvitedUserID == userID && invite.Status == collab.StatusPending {
				invites = append(invites, invite)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return invites, nil
}

// Save runs the whole read-check-write sequence in a single bolt
// update transaction: the pair's current status is compared against
// prev, the invite is written, and the membership grant, when present,
// lands in the same transaction. Two concurrent Saves for the same
// pair serialize on the transaction, so exactly one of them sees the
// expected previous status.
func (r *InviteRepository) Save(inv *collab.Invite, prev collab.Status, grant *collab.Membership) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		existing := pairInvite(tx, inv.NoteID, inv.InvitedUserID)
		if existing.Status != prev {
			return collab.ErrConflict
		}

		bucket := tx.Bucket(inviteBucket)
		if existing.ID != 0 {
			inv.ID = existing.ID
		} else {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			inv.ID = int(id)
		}

		data, err := json.Marshal(inv)
		if err != nil {
			return err
		}
		if err := bucket.Put(itob(inv.ID), data); err != nil {
			return err
		}

		pairKey := pairKey(inv.NoteID, inv.InvitedUserID)
		if err := tx.Bucket(invitePairBucket).Put(pairKey, itob(inv.ID)); err != nil {
			return err
		}

		if grant != nil {
			return putMembership(tx, *grant)
		}
		return nil
	})
}

func (r *InviteRepository) DeleteForNote(noteID int) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(inviteBucket)
		pairs := tx.Bucket(invitePairBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var invite collab.Invite
			if err := json.Unmarshal(data, &invite); err != nil {
				return err
			}
			if invite.NoteID != noteID {
				continue
			}

			if err := c.Delete(); err != nil {
				return err
			}
			if err := pairs.Delete(pairKey(invite.NoteID, invite.InvitedUserID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// pairInvite resolves the (note, user) index inside tx. It returns the
// zero Invite when the pair has no row.
func pairInvite(tx *bolt.Tx, noteID, userID int) collab.Invite {
	idData := tx.Bucket(invitePairBucket).Get(pairKey(noteID, userID))
	if idData == nil {
		return collab.Invite{}
	}

	data := tx.Bucket(inviteBucket).Get(idData)
	if data == nil {
		return collab.Invite{}
	}

	var invite collab.Invite
	if err := json.Unmarshal(data, &invite); err != nil {
		return collab.Invite{}
	}
	return invite
}

// ------------------------------------------------------------------------------------------------
// Helpers
// ------------------------------------------------------------------------------------------------

// itob returns an 8-byte big endian representation of v.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

// pairKey builds the composite (note id, user id) key.
func pairKey(noteID, userID int) []byte {
	return append(itob(noteID), itob(userID)...)
}
