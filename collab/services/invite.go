package services

import (
	"sort"
	"time"

	"github.com/Allan0411/Notes-API/collab"
	"github.com/Allan0411/Notes-API/log"
)

// Notifier is told about freshly (re)sent invites so the invited user
// can be emailed. Notifications are best effort: a failure is logged
// and never fails the operation.
type Notifier interface {
	InviteSent(invite collab.Invite) error
}

// InviteService owns the invite state machine. Every transition goes
// through here; the repositories only enforce atomicity and the
// uniqueness of the (note, invited user) pair.
type InviteService struct {
	invites     collab.InviteRepository
	memberships collab.MembershipRepository
	notes       collab.NoteGetter

	notifier Notifier
	logger   log.Logger
}

func NewInviteService(
	invites collab.InviteRepository,
	memberships collab.MembershipRepository,
	notes collab.NoteGetter,
	notifier Notifier,
	logger log.Logger,
) *InviteService {
	return &InviteService{
		invites:     invites,
		memberships: memberships,
		notes:       notes,

		notifier: notifier,
		logger:   logger,
	}
}

// Send creates a pending invite for (noteID, invitedUserID), or revives
// a declined one in place. Only the note's creator can send invites.
func (s *InviteService) Send(actorID, noteID, invitedUserID int, role collab.Role) (collab.Invite, error) {
	note, err := s.notes.Note(noteID)
	if err != nil {
		return collab.Invite{}, err
	}
	if note.ID == 0 {
		return collab.Invite{}, errNoteNotFound(noteID)
	}
	if note.CreatorID != actorID {
		return collab.Invite{}, errNotOwner(noteID)
	}

	if invitedUserID == actorID {
		return collab.Invite{}, errSelfInvite()
	}

	if role != "" && !role.Grantable() {
		return collab.Invite{}, errInvalidRole(string(role))
	}

	// Best-effort check: a direct Add racing with this read can still
	// leave a membership next to a pending invite. Acceptance grants
	// through an upsert, so the pair stays consistent either way.
	member, err := s.memberships.Get(noteID, invitedUserID)
	if err != nil {
		return collab.Invite{}, err
	}
	if member.UserID != 0 {
		return collab.Invite{}, errAlreadyCollaborator()
	}

	existing, err := s.invites.GetByNoteAndUser(noteID, invitedUserID)
	if err != nil {
		return collab.Invite{}, err
	}

	var invite collab.Invite
	var prev collab.Status
	switch existing.Status {
	case collab.StatusPending:
		return collab.Invite{}, errInvitePending()
	case collab.StatusAccepted:
		return collab.Invite{}, errAlreadyCollaborator()
	case collab.StatusDeclined:
		// Resend: revive the declined row in place, keeping its id.
		// The role only changes if the owner named a new one.
		invite = existing
		invite.InviterUserID = actorID
		if role != "" {
			invite.Role = role
		}
		invite.Status = collab.StatusPending
		invite.SentAt = time.Now()
		invite.RespondedAt = nil
		prev = collab.StatusDeclined
	default:
		if role == "" {
			role = collab.RoleEditor
		}
		invite = collab.Invite{
			NoteID:        noteID,
			InvitedUserID: invitedUserID,
			InviterUserID: actorID,
			Role:          role,
			Status:        collab.StatusPending,
			SentAt:        time.Now(),
			RespondedAt:   nil,
		}
		prev = collab.StatusNone
	}

	err = s.invites.Save(&invite, prev, nil)
	if err == collab.ErrConflict {
		// A concurrent send won the race. Report the state it left.
		return collab.Invite{}, s.sendConflict(noteID, invitedUserID)
	}
	if err != nil {
		return collab.Invite{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.InviteSent(invite); err != nil {
			s.logger.Errorf("could not notify user %d about invite %d: %v", invitedUserID, invite.ID, err)
		}
	}

	return invite, nil
}

// sendConflict re-reads the pair after a failed compare-and-swap and
// maps the state that beat us to the matching error.
func (s *InviteService) sendConflict(noteID, invitedUserID int) error {
	existing, err := s.invites.GetByNoteAndUser(noteID, invitedUserID)
	if err != nil {
		return err
	}

	if existing.Status == collab.StatusAccepted {
		return errAlreadyCollaborator()
	}
	return errInvitePending()
}

// Respond accepts or declines a pending invite. Only the invited user
// can respond; anyone else gets a 404, including the inviter. On
// acceptance the membership is granted in the same atomic unit as the
// status flip: the invite can never be Accepted without its membership
// row, nor the other way around.
func (s *InviteService) Respond(actorID, inviteID int, accept bool) (collab.Invite, error) {
	invite, err := s.invites.Get(inviteID)
	if err != nil {
		return collab.Invite{}, err
	}
	if invite.ID == 0 || invite.InvitedUserID != actorID {
		return collab.Invite{}, errInviteNotFound(inviteID)
	}

	if invite.Status != collab.StatusPending {
		return collab.Invite{}, errAlreadyResponded(inviteID)
	}

	now := time.Now()
	invite.RespondedAt = &now

	var grant *collab.Membership
	if accept {
		invite.Status = collab.StatusAccepted

		role := invite.Role
		if !role.Grantable() {
			role = collab.RoleEditor
		}
		grant = &collab.Membership{
			NoteID: invite.NoteID,
			UserID: actorID,
			Role:   role,
		}
	} else {
		invite.Status = collab.StatusDeclined
	}

	err = s.invites.Save(&invite, collab.StatusPending, grant)
	if err == collab.ErrConflict {
		return collab.Invite{}, errAlreadyResponded(inviteID)
	}
	if err != nil {
		return collab.Invite{}, err
	}

	return invite, nil
}

// PendingForUser returns the actor's pending invites, most recent
// first.
func (s *InviteService) PendingForUser(actorID int) ([]collab.Invite, error) {
	invites, err := s.invites.PendingForUser(actorID)
	if err != nil {
		return nil, err
	}

	sort.Slice(invites, func(i, j int) bool {
		return invites[i].SentAt.After(invites[j].SentAt)
	})
	return invites, nil
}
