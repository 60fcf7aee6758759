package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// BioRequest is the bio data submitted for QR encoding.
// Skills, tools and others are free text; projects, experience and
// education hold one entry per item in the order the user added them.
type BioRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Age           Text     `json:"age,omitempty"`
	Role          string   `json:"role,omitempty"`
	Qualification string   `json:"qualification,omitempty"`
	Address       string   `json:"address,omitempty"`
	Skills        Text     `json:"skills,omitempty"`
	Tools         Text     `json:"tools,omitempty"`
	Description   string   `json:"description,omitempty"`
	Others        Text     `json:"others,omitempty"`
	Projects      []string `json:"projects,omitempty"`
	Experience    []string `json:"experience,omitempty"`
	Education     []string `json:"education,omitempty"`
}

// QRResponse holds the rendered QR code as a PNG data URL, along with the bio
// it encodes.
type QRResponse struct {
	QRCode string     `json:"qrCode"`
	Bio    BioRequest `json:"bio"`
}

// Text is a string field that also accepts a bare JSON number, or a list of
// strings which is joined with ", ".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*t = JoinText(items)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

// JoinText joins the non-blank items with ", ".
func JoinText(items []string) Text {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return Text(strings.Join(kept, ", "))
}
