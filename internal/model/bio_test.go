package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBioRequest_DecodesFormBody(t *testing.T) {
	body := `{
		"name": "Ann",
		"email": "ann@example.com",
		"phone": "555-0100",
		"age": "31",
		"role": "Engineer",
		"qualification": "BSc",
		"address": "1 Main St",
		"skills": "Go, React",
		"tools": "Docker",
		"description": "Builds things",
		"others": "",
		"projects": ["QR app"],
		"experience": [""],
		"education": ["BSc"]
	}`

	var req BioRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, Text("Go, React"), req.Skills)
	assert.Equal(t, Text("Docker"), req.Tools)
	assert.Equal(t, Text(""), req.Others)
	assert.Equal(t, []string{"QR app"}, req.Projects)
	assert.Equal(t, []string{""}, req.Experience)
	assert.Equal(t, []string{"BSc"}, req.Education)
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Text
	}{
		{"string", `"Go"`, "Go"},
		{"number", `29`, "29"},
		{"list", `["Go", " ", "SQL"]`, "Go, SQL"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad Text
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &bad))
}
