package render

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// goTemplateEngine compiles slots as text/template with the slim-sprig
// function map. Templates see the slot's Args struct, e.g. {{.Name}}.
type goTemplateEngine struct{}

func (goTemplateEngine) Name() string { return EngineGoTemplate }

func (goTemplateEngine) Compile(slot Slot, text string) (Template, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(slot)).Funcs(funcMap).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template %s: %w", slot, err)
	}
	return goTemplate{tmpl: tmpl}, nil
}

type goTemplate struct {
	tmpl *template.Template
}

func (t goTemplate) Execute(args Args) (string, error) {
	buf := new(bytes.Buffer)
	if err := t.tmpl.Execute(buf, args); err != nil {
		return "", err
	}
	return buf.String(), nil
}
