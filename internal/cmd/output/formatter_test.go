package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/refselect/internal/cmd/table"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"table", FormatTable, false},
		{"", "", false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("Yaml"))
}

func TestJSONFormatterKeepsMarkup(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatJSON).Format(&buf, map[string]string{"label": "&nbsp;Red"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"&nbsp;Red"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatYAML).Format(&buf, map[string]any{"items": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "items:\n- a\n- b\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	data := table.Data{
		Headers: []string{"Label", "Id"},
		Rows:    [][]string{{"Red", "r1"}, {"Blue", "b1"}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "LABEL")
	assert.Contains(t, out, "Red")
	assert.Contains(t, out, "b1")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []int{1, 2}))
	assert.JSONEq(t, "[1,2]", buf.String())
}

func TestWrite(t *testing.T) {
	calls := 0
	build := func() table.Data {
		calls++
		return table.Data{Headers: []string{"X"}, Rows: [][]string{{"1"}}}
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, []string{"x"}, build))
	assert.Equal(t, 0, calls)

	buf.Reset()
	require.NoError(t, Write(&buf, FormatTable, []string{"x"}, build))
	assert.Equal(t, 1, calls)
}
