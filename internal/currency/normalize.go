package currency

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawRecord is one element of the listing endpoint's response.
// Optional fields stay nil when the upstream omits them.
type RawRecord struct {
	Name                string   `json:"name"`
	Code                string   `json:"code"`
	NotAllowedCountries []string `json:"notAllowedCountries,omitempty"`
	SupportsTestMode    *bool    `json:"supportsTestMode,omitempty"`
}

// UnmarshalJSON is lenient about optional fields: a value of the wrong type
// is dropped instead of failing the whole list.
func (r *RawRecord) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("record is null")
	}

	var out RawRecord
	_ = json.Unmarshal(fields["name"], &out.Name)
	_ = json.Unmarshal(fields["code"], &out.Code)
	if raw, ok := fields["notAllowedCountries"]; ok {
		var countries []string
		if json.Unmarshal(raw, &countries) == nil {
			out.NotAllowedCountries = countries
		}
	}
	if raw, ok := fields["supportsTestMode"]; ok {
		var v bool
		if json.Unmarshal(raw, &v) == nil && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			out.SupportsTestMode = &v
		}
	}
	*r = out
	return nil
}

// Normalize maps raw records to display items, preserving order.
//
// NotInUSA is derived from notAllowedCountries rather than the upstream
// isSupportedInUS flag, which is not populated.
func Normalize(raw []RawRecord) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, normalizeOne(r))
	}
	return items
}

func normalizeOne(r RawRecord) Item {
	it := Item{
		Name:   r.Name,
		Symbol: r.Code,
	}
	for _, c := range r.NotAllowedCountries {
		if c == "USA" {
			it.NotInUSA = true
			break
		}
	}
	if r.SupportsTestMode != nil {
		it.HasTestMode = *r.SupportsTestMode
	}
	return it
}

// Decode parses a listing response body into display items.
// Anything other than a JSON array of objects is ErrMalformedResponse.
func Decode(body []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedResponse)
	}
	var raw []RawRecord
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return Normalize(raw), nil
}
