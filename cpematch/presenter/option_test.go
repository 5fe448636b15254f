package presenter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anchore/cpematch/cpematch/presenter/json"
	"github.com/anchore/cpematch/cpematch/presenter/table"
)

func TestParseOption(t *testing.T) {
	tests := []struct {
		input string
		want  Option
	}{
		{input: "json", want: JSONPresenter},
		{input: "JSON", want: JSONPresenter},
		{input: "table", want: TablePresenter},
		{input: " Table ", want: TablePresenter},
		{input: "cyclonedx", want: UnknownPresenter},
		{input: "", want: UnknownPresenter},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.want, ParseOption(test.input))
		})
	}
}

func TestOption_String(t *testing.T) {
	assert.Equal(t, "json", JSONPresenter.String())
	assert.Equal(t, "table", TablePresenter.String())
	assert.Equal(t, "unknown", UnknownPresenter.String())
	assert.Equal(t, "[table json]", fmt.Sprintf("%v", Options))
}

func TestGetPresenter(t *testing.T) {
	assert.IsType(t, &json.Presenter{}, GetPresenter(JSONPresenter, nil, false))
	assert.IsType(t, &table.Presenter{}, GetPresenter(TablePresenter, nil, false))
	assert.Nil(t, GetPresenter(UnknownPresenter, nil, false))
}
