package qrcode

import (
	"encoding/json"
	"strings"
)

// Scanned is a payload read back by a scanning client.
type Scanned struct {
	Serial     string            `json:"serial"`
	Name       string            `json:"name"`
	Category   string            `json:"category"`
	Location   string            `json:"location"`
	Supplier   string            `json:"supplier"`
	IntakeDate string            `json:"intake_date"`
	Meta       *Meta             `json:"meta,omitempty"`
	Extras     map[string]string `json:"extras,omitempty"`
	Raw        string            `json:"raw"`
}

var scannedKeys = map[string]bool{
	"serial":      true,
	"name":        true,
	"category":    true,
	"location":    true,
	"supplier":    true,
	"intake_date": true,
	"_meta":       true,
}

// ParsePayload reads a scanned payload. A payload that is not a JSON object
// is taken to be a bare serial.
func ParsePayload(raw string) Scanned {
	trimmed := strings.TrimSpace(raw)
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil || obj == nil {
		return Scanned{Serial: trimmed, Raw: raw}
	}

	s := Scanned{
		Serial:     stringField(obj, "serial"),
		Name:       stringField(obj, "name"),
		Category:   stringField(obj, "category"),
		Location:   stringField(obj, "location"),
		Supplier:   stringField(obj, "supplier"),
		IntakeDate: stringField(obj, "intake_date"),
		Raw:        raw,
	}
	if m, ok := obj["_meta"]; ok {
		var meta Meta
		if json.Unmarshal(m, &meta) == nil {
			s.Meta = &meta
		}
	}
	for k, v := range obj {
		if scannedKeys[k] {
			continue
		}
		if s.Extras == nil {
			s.Extras = make(map[string]string)
		}
		s.Extras[k] = rawString(v)
	}
	return s
}

func stringField(obj map[string]json.RawMessage, key string) string {
	v, ok := obj[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(rawString(v))
}

// rawString renders a JSON value as text: strings unquoted, null as "",
// anything else as its literal form.
func rawString(v json.RawMessage) string {
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	lit := strings.TrimSpace(string(v))
	if lit == "null" {
		return ""
	}
	return lit
}
