package mail

import (
	"bytes"
	"html/template"
)

const resetCodeTemplate = `
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
        "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html>
    <body>
        <p>A password reset was requested for your account.</p>
        <p>Your code: <b>{{ .Code }}</b></p>
        <p>It expires in 15 minutes. If you did not ask for a reset you
        can ignore this email.</p>
    </body>
</html>
`

const inviteTemplate = `
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
        "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html>
    <body>
        <p>{{ .Inviter }} invited you to collaborate on "{{ .NoteTitle }}" as {{ .Role }}.</p>
        <p>Log in to accept or decline the invite.</p>
    </body>
</html>
`

func render(tmpl string, data interface{}) (string, error) {
	t, err := template.New("mail").Parse(tmpl)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
