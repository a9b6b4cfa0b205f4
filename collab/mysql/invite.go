package mysql

import (
	"github.com/jinzhu/gorm"

	"github.com/Allan0411/Notes-API/collab"
)

type InviteRepository struct {
	driver *Driver
}

func NewInviteRepository(driver *Driver) *InviteRepository {
	repo := &InviteRepository{
		driver: driver,
	}
	return repo
}

func (r *InviteRepository) Get(id int) (collab.Invite, error) {
	var dbInv Invite
	err := r.driver.db.
		Where("id = ?", id).
		First(&dbInv).
		Error
	if gorm.IsRecordNotFoundError(err) {
		return collab.Invite{}, nil
	} else if err != nil {
		return collab.Invite{}, err
	}
	return dbInv.format(), nil
}

func (r *InviteRepository) GetByNoteAndUser(noteID, userID int) (collab.Invite, error) {
	var dbInv Invite
	err := r.driver.db.
		Where("note_id = ? AND invited_user_id = ?", noteID, userID).
		First(&dbInv).
		Error
	if gorm.IsRecordNotFoundError(err) {
		return collab.Invite{}, nil
	} else if err != nil {
		return collab.Invite{}, err
	}
	return dbInv.format(), nil
}

func (r *InviteRepository) PendingForUser(userID int) ([]collab.Invite, error) {
	var dbInvs []Invite
	err := r.driver.db.
		Where("invited_user_id = ? AND status = ?", userID, string(collab.StatusPending)).
		Find(&dbInvs).
		Error
	if err != nil {
		return nil, err
	}

	invs := make([]collab.Invite, len(dbInvs))
	for i, dbInv := range dbInvs {
		invs[i] = dbInv.format()
	}
	return invs, nil
}

// Save applies the write in a transaction. The status precondition is
// enforced by locking the pair row with SELECT ... FOR UPDATE, with the
// unique (note_id, invited_user_id) index as a backstop for insert
// races.
func (r *InviteRepository) Save(inv *collab.Invite, prev collab.Status, grant *collab.Membership) error {
	tx := r.driver.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var current Invite
	err := tx.
		Set("gorm:query_option", "FOR UPDATE").
		Where("note_id = ? AND invited_user_id = ?", inv.NoteID, inv.InvitedUserID).
		First(&current).
		Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		tx.Rollback()
		return err
	}

	stored := collab.StatusNone
	if !gorm.IsRecordNotFoundError(err) {
		stored = collab.Status(current.Status)
	}
	if stored != prev {
		tx.Rollback()
		return collab.ErrConflict
	}

	dbInv := newInvite(*inv)
	if stored == collab.StatusNone {
		dbInv.ID = 0
		if err := tx.Create(&dbInv).Error; err != nil {
			tx.Rollback()
			if isDuplicateEntry(err) {
				return collab.ErrConflict
			}
			return err
		}
	} else {
		dbInv.ID = current.ID
		if err := tx.Save(&dbInv).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if grant != nil {
		if err := upsertMembership(tx, *grant); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	inv.ID = dbInv.ID
	return nil
}

func (r *InviteRepository) DeleteForNote(noteID int) error {
	return r.driver.db.
		Where("note_id = ?", noteID).
		Delete(Invite{}).
		Error
}
