package mysql

import (
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"

	"github.com/Allan0411/Notes-API/collab"
)

type MembershipRepository struct {
	driver *Driver
}

func NewMembershipRepository(driver *Driver) *MembershipRepository {
	repo := &MembershipRepository{
		driver: driver,
	}
	return repo
}

func (r *MembershipRepository) Get(noteID, userID int) (collab.Membership, error) {
	var dbM Membership
	err := r.driver.db.
		Where("note_id = ? AND user_id = ?", noteID, userID).
		First(&dbM).
		Error
	if gorm.IsRecordNotFoundError(err) {
		return collab.Membership{}, nil
	} else if err != nil {
		return collab.Membership{}, err
	}
	return dbM.format(), nil
}

func (r *MembershipRepository) ListForNote(noteID int) ([]collab.Membership, error) {
	var dbMs []Membership
	err := r.driver.db.
		Where("note_id = ?", noteID).
		Find(&dbMs).
		Error
	if err != nil {
		return nil, err
	}

	ms := make([]collab.Membership, len(dbMs))
	for i, dbM := range dbMs {
		ms[i] = dbM.format()
	}
	return ms, nil
}

func (r *MembershipRepository) NoteIDsForUser(userID int) ([]int, error) {
	var dbMs []Membership
	err := r.driver.db.
		Where("user_id = ?", userID).
		Find(&dbMs).
		Error
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(dbMs))
	for i, dbM := range dbMs {
		ids[i] = dbM.NoteID
	}
	return ids, nil
}

func (r *MembershipRepository) Insert(m *collab.Membership) error {
	dbM := newMembership(*m)
	err := r.driver.db.Create(&dbM).Error
	if isDuplicateEntry(err) {
		return collab.ErrConflict
	}
	return err
}

func (r *MembershipRepository) Update(m *collab.Membership) error {
	res := r.driver.db.
		Model(Membership{}).
		Where("note_id = ? AND user_id = ?", m.NoteID, m.UserID).
		Update("role", string(m.Role))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return collab.ErrConflict
	}
	return nil
}

func (r *MembershipRepository) Delete(noteID, userID int) (bool, error) {
	res := r.driver.db.
		Where("note_id = ? AND user_id = ?", noteID, userID).
		Delete(Membership{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *MembershipRepository) DeleteForNote(noteID int) error {
	return r.driver.db.
		Where("note_id = ?", noteID).
		Delete(Membership{}).
		Error
}

// upsertMembership writes the grant inside the transaction carrying an
// invite acceptance.
func upsertMembership(tx *gorm.DB, m collab.Membership) error {
	res := tx.
		Model(Membership{}).
		Where("note_id = ? AND user_id = ?", m.NoteID, m.UserID).
		Update("role", string(m.Role))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	dbM := newMembership(m)
	return tx.Create(&dbM).Error
}

func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	if mysqlErr, ok := err.(*mysql.MySQLError); ok {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
