package mail

import (
	"fmt"

	"github.com/Allan0411/Notes-API/collab"
	"github.com/Allan0411/Notes-API/errors"
	"github.com/Allan0411/Notes-API/notes"
	"github.com/Allan0411/Notes-API/users"
)

// ResetMailer emails password reset codes. It implements the users
// service's Mailer interface.
type ResetMailer struct {
	mailer Mailer
}

func NewResetMailer(mailer Mailer) *ResetMailer {
	return &ResetMailer{mailer: mailer}
}

func (m *ResetMailer) SendResetCode(email, code string) error {
	body, err := render(resetCodeTemplate, struct {
		Code string
	}{Code: code})
	if err != nil {
		return err
	}

	return m.mailer.Send([]string{email}, "Your password reset code", body)
}

// InviteNotifier emails invited users when an invite is (re)sent. It
// implements the collaboration service's Notifier interface.
type InviteNotifier struct {
	mailer Mailer

	users users.Repository
	notes notes.Repository
}

func NewInviteNotifier(mailer Mailer, userRepo users.Repository, noteRepo notes.Repository) *InviteNotifier {
	return &InviteNotifier{
		mailer: mailer,

		users: userRepo,
		notes: noteRepo,
	}
}

func (n *InviteNotifier) InviteSent(invite collab.Invite) error {
	invited, err := n.users.Get(invite.InvitedUserID)
	if err != nil {
		return err
	}
	if invited.Email == "" {
		return errors.New(fmt.Sprintf("no email for user %d", invite.InvitedUserID))
	}

	inviter, err := n.users.Get(invite.InviterUserID)
	if err != nil {
		return err
	}

	note, err := n.notes.Get(invite.NoteID)
	if err != nil {
		return err
	}

	body, err := render(inviteTemplate, struct {
		Inviter   string
		NoteTitle string
		Role      string
	}{
		Inviter:   inviter.Username,
		NoteTitle: note.Title,
		Role:      string(invite.Role),
	})
	if err != nil {
		return err
	}

	return n.mailer.Send([]string{invited.Email}, "You have been invited to a note", body)
}
