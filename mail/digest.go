package mail

import (
	"github.com/Allan0411/Notes-API/collab"
	"github.com/Allan0411/Notes-API/notes"
	"github.com/Allan0411/Notes-API/users"
)

const digestTemplate = `
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
        "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html>
    <body>
        <p>Hi {{ .Username }}, you have {{ len .Titles }} pending invite(s) waiting for you:</p>
        <ul>
            {{ range .Titles }}
                <li>{{ . }}</li>
            {{ end }}
        </ul>
        <p>Log in to accept or decline them.</p>
    </body>
</html>
`

// DigestMailer emails users a reminder of their pending invites. It
// implements the cron service's Notifier interface.
type DigestMailer struct {
	mailer Mailer

	notes notes.Repository
}

func NewDigestMailer(mailer Mailer, noteRepo notes.Repository) *DigestMailer {
	return &DigestMailer{
		mailer: mailer,

		notes: noteRepo,
	}
}

func (m *DigestMailer) PendingDigest(user users.User, invites []collab.Invite) error {
	if user.Email == "" || len(invites) == 0 {
		return nil
	}

	titles := make([]string, 0, len(invites))
	for _, invite := range invites {
		note, err := m.notes.Get(invite.NoteID)
		if err != nil {
			return err
		}
		titles = append(titles, note.Title)
	}

	body, err := render(digestTemplate, struct {
		Username string
		Titles   []string
	}{
		Username: user.Username,
		Titles:   titles,
	})
	if err != nil {
		return err
	}

	return m.mailer.Send([]string{user.Email}, "You have pending invites", body)
}
