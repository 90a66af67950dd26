package view

import (
	"bytes"
	"html/template"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

var formTmpl = template.Must(template.New("form").Parse(
	`{{range .Groups}}<div class="question-block">` +
		`<p><strong>{{.Number}}. {{.Prompt}}</strong></p>` +
		`{{$name := .Name}}{{range .Options}}<label><input type="radio" name="{{$name}}" value="{{.}}"> {{.}}</label><br>{{end}}` +
		`</div><hr>{{end}}`))

var resultTmpl = template.Must(template.New("result").Parse(
	`<h2>{{.Result}}</h2>` +
		`<a class="home-button" href="{{.Home.Path}}">{{.Home.Label}}</a>`))

// FormHTML renders the form markup. Text is escaped and no option is checked.
func FormHTML(form app.Form) (string, error) {
	var buf bytes.Buffer
	if err := formTmpl.Execute(&buf, form); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResultHTML renders the score heading and the home navigation button.
func ResultHTML(result domain.Result, home app.HomeLink) (string, error) {
	var buf bytes.Buffer
	err := resultTmpl.Execute(&buf, struct {
		Result string
		Home   app.HomeLink
	}{Result: result.String(), Home: home})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
