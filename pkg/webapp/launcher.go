package webapp

import (
	"bytes"
	"strings"
	"text/template"
)

// launcherData feeds the launcher template
type launcherData struct {
	Browsers []string
	URL      string
	Class    string
	Profile  string
}

var launcherTemplate = template.Must(template.New("launcher").Funcs(template.FuncMap{
	"quote": shellQuote,
}).Parse(`#!/bin/bash

BROWSER_CMD=""
for candidate in{{range .Browsers}} {{quote .}}{{end}}; do
	if command -v "$candidate" > /dev/null 2>&1; then
		BROWSER_CMD="$candidate"
		break
	fi
done

if [ -z "$BROWSER_CMD" ]; then
	echo "deskit: no supported browser found" >&2
	exit 1
fi

exec "$BROWSER_CMD" --app={{quote .URL}} --class={{quote .Class}} --name={{quote .Class}} --user-data-dir={{quote .Profile}} "$@"
`))

func renderLauncher(data launcherData) ([]byte, error) {
	var buf bytes.Buffer
	if err := launcherTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// shellQuote wraps s in single quotes so the shell takes it literally
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
