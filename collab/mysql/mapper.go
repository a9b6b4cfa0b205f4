package mysql

import (
	"time"

	"github.com/Allan0411/Notes-API/collab"
)

type Invite struct {
	ID int

	NoteID        int
	InvitedUserID int
	InviterUserID int

	Role   string
	Status string

	SentAt      time.Time
	RespondedAt *time.Time
}

func (Invite) TableName() string { return "collab_invites" }

func newInvite(inv collab.Invite) Invite {
	return Invite{
		ID:            inv.ID,
		NoteID:        inv.NoteID,
		InvitedUserID: inv.InvitedUserID,
		InviterUserID: inv.InviterUserID,
		Role:          string(inv.Role),
		Status:        string(inv.Status),
		SentAt:        inv.SentAt,
		RespondedAt:   inv.RespondedAt,
	}
}

func (i Invite) format() collab.Invite {
	return collab.Invite{
		ID:            i.ID,
		NoteID:        i.NoteID,
		InvitedUserID: i.InvitedUserID,
		InviterUserID: i.InviterUserID,
		Role:          collab.Role(i.Role),
		Status:        collab.Status(i.Status),
		SentAt:        i.SentAt,
		RespondedAt:   i.RespondedAt,
	}
}

type Membership struct {
	NoteID int `gorm:"primary_key"`
	UserID int `gorm:"primary_key"`

	Role string
}

func (Membership) TableName() string { return "collab_memberships" }

func newMembership(m collab.Membership) Membership {
	return Membership{
		NoteID: m.NoteID,
		UserID: m.UserID,
		Role:   string(m.Role),
	}
}

func (m Membership) format() collab.Membership {
	return collab.Membership{
		NoteID: m.NoteID,
		UserID: m.UserID,
		Role:   collab.Role(m.Role),
	}
}
