package notification

import "html/template"

var alertTemplate = template.Must(template.New("alert").Parse(`<p>{{.Name}} just received a {{.Stars}} review.</p>
<p><strong>Rating:</strong> {{.Rating}}/5</p>
{{if .Comment}}<p><strong>Comment:</strong></p>
<blockquote>{{.Comment}}</blockquote>{{else}}<p><em>No comment left.</em></p>{{end}}
<p><a href="{{.InboxURL}}">Open your review inbox</a></p>
`))

type alertData struct {
	Name     string
	Stars    string
	Rating   int
	Comment  string
	InboxURL string
}
