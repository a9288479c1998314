package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the saved form of a mind map.
type Document struct {
	Bubbles     []Bubble     `json:"bubbles" validate:"required,dive"`
	Connections []Connection `json:"connections" validate:"dive"`
	Zoom        *float64     `json:"zoom,omitempty" validate:"omitempty,gt=0"`
	Translate   *Translate   `json:"translate,omitempty"`
}

type Bubble struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Color    string   `json:"color"`
	Left     *float64 `json:"left" validate:"required"`
	Top      *float64 `json:"top" validate:"required"`
	Width    Length   `json:"width,omitempty" validate:"gte=0"`
	Height   Length   `json:"height,omitempty" validate:"gte=0"`
	FontSize Length   `json:"fontSize,omitempty" validate:"gte=0"`
}

type Connection struct {
	StartID  string  `json:"startId"`
	EndID    string  `json:"endId"`
	LineType string  `json:"lineType"`
	Color    *string `json:"color,omitempty"`
}

type Translate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Length is a size in px. It is written as a number and read from either
// a number or a CSS length string such as "120px". Empty strings and null
// read as zero, meaning unset.
type Length float64

func (l Length) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(l))
}

func (l *Length) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
		if s == "" || s == "auto" {
			*l = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("length %q: %w", s, err)
		}
		*l = Length(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = Length(v)
	return nil
}
