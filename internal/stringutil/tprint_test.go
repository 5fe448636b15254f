package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTprintf(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     string
		data     map[string]interface{}
		expected string
	}{
		{
			name:     "application name",
			tmpl:     "{{.appName}} match --cpe CPE",
			expected: "cpematch match --cpe CPE",
		},
		{
			name:     "extra fields",
			tmpl:     "{{.appName}} db import {{.file}}",
			data:     map[string]interface{}{"file": "records.json"},
			expected: "cpematch db import records.json",
		},
		{
			name:     "fields override the defaults",
			tmpl:     "{{.appName}}",
			data:     map[string]interface{}{"appName": "other"},
			expected: "other",
		},
		{
			name:     "execution errors render nothing",
			tmpl:     "{{.appName.Missing}}",
			expected: "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Tprintf(test.tmpl, test.data))
		})
	}
}
