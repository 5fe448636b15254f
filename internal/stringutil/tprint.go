package stringutil

import (
	"bytes"
	"text/template"

	"github.com/anchore/cpematch/internal"
)

// Tprintf renders a string from a given template string and field values. The application name is always available
// as {{.appName}}.
func Tprintf(tmpl string, data map[string]interface{}) string {
	fields := map[string]interface{}{
		"appName": internal.ApplicationName,
	}
	for k, v := range data {
		fields[k] = v
	}

	t := template.Must(template.New("").Parse(tmpl))
	buf := &bytes.Buffer{}
	if err := t.Execute(buf, fields); err != nil {
		return ""
	}
	return buf.String()
}
