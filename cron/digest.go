package cron

import (
	"gopkg.in/robfig/cron.v2"

	"github.com/Allan0411/Notes-API/collab"
	"github.com/Allan0411/Notes-API/log"
	"github.com/Allan0411/Notes-API/users"
)

const (
	spec = "0 0 8 * * *" // Daily at 8am
	// spec = "0 */2 * * * *" // Every 2 minutes. For dev
)

// Notifier delivers the digest. The mail package implements it.
type Notifier interface {
	PendingDigest(user users.User, invites []collab.Invite) error
}

// Service mails every user a daily reminder of their pending invites.
// It only reads the invite ledger, all transitions stay with the
// invite service.
type Service struct {
	users   users.Repository
	invites collab.InviteRepository

	notifier Notifier

	logger log.Logger
}

func NewService(
	userRepo users.Repository,
	invites collab.InviteRepository,
	notifier Notifier,
	logger log.Logger,
) *Service {
	return &Service{
		users:   userRepo,
		invites: invites,

		notifier: notifier,

		logger: logger,
	}
}

func (s *Service) Start() {
	c := cron.New()
	c.AddFunc(spec, func() {
		if err := s.Run(); err != nil {
			s.logger.Errorf("could not send invite digests: %v", err)
		} else {
			s.logger.Print("successfully sent invite digests")
		}
	})
	c.Start()
}

// Run sends the digest to every user with at least one pending invite.
// A failure for one user does not stop the others.
func (s *Service) Run() error {
	all, err := s.users.List()
	if err != nil {
		return err
	}

	var lastErr error
	for _, user := range all {
		pending, err := s.invites.PendingForUser(user.ID)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			continue
		}

		if err := s.notifier.PendingDigest(user, pending); err != nil {
			s.logger.Errorf("could not send digest to user %d: %v", user.ID, err)
			lastErr = err
		}
	}
	return lastErr
}
