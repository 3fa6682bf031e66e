// Package certlist converts certification lists between submitted form rows,
// typed records and the text encoding persisted on the account row.
package certlist

import (
	"encoding/json"
	"strings"

	"github.com/mcoot/folio/internal/model"
)

// Decode parses a persisted certification list.
// Absent or malformed input yields an empty list, never an error.
func Decode(raw string) []model.Certification {
	if strings.TrimSpace(raw) == "" {
		return []model.Certification{}
	}

	var certs []model.Certification
	if err := json.Unmarshal([]byte(raw), &certs); err != nil || certs == nil {
		return []model.Certification{}
	}
	return certs
}

// Encode serializes a certification list for persistence
func Encode(certs []model.Certification) string {
	if len(certs) == 0 {
		return "[]"
	}

	data, err := json.Marshal(certs)
	if err != nil {
		// Only string fields, marshalling cannot fail
		return "[]"
	}
	return string(data)
}

// FromForm assembles a certification list from parallel form arrays
// (cert_name[], cert_issuer[], cert_date[]). Rows whose name is empty after
// trimming are dropped; missing issuer/date entries are treated as empty.
func FromForm(names, issuers, dates []string) []model.Certification {
	certs := make([]model.Certification, 0, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		certs = append(certs, model.Certification{
			Name:   name,
			Issuer: at(issuers, i),
			Date:   at(dates, i),
		})
	}
	return certs
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
