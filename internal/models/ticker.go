package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	FieldSymbol          = "Symbol"
	FieldOpeningScenario = "Opening Scenario"
	FieldTrendObserved   = "Trend Observed"
	FieldUpwardClose     = "Upward Close"
	FieldDownwardClose   = "Downward Close"
	FieldFlatClose       = "Flat Close"
)

// Percent is a percentage exactly as the server sent it. The server emits
// strings such as "5.00"; bare JSON numbers are accepted and kept in their
// literal form. No rounding or reformatting is ever applied.
type Percent string

func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("percentage is null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Percent(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("percentage must be a string or number: %w", err)
	}
	*p = Percent(n.String())
	return nil
}

func (p Percent) String() string {
	return string(p)
}

type TickerRecord struct {
	Symbol          string  `json:"Symbol"`
	OpeningScenario string  `json:"Opening Scenario"`
	TrendObserved   string  `json:"Trend Observed"`
	UpwardClose     Percent `json:"Upward Close"`
	DownwardClose   Percent `json:"Downward Close"`
	FlatClose       Percent `json:"Flat Close"`
}

// UnmarshalJSON requires every field to be present with the right JSON type.
func (t *TickerRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &SchemaError{Field: "record", Reason: "not an object"}
	}

	text := []struct {
		key string
		dst *string
	}{
		{FieldSymbol, &t.Symbol},
		{FieldOpeningScenario, &t.OpeningScenario},
		{FieldTrendObserved, &t.TrendObserved},
	}
	for _, f := range text {
		v, ok := raw[f.key]
		if !ok {
			return &SchemaError{Field: f.key, Reason: "missing"}
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return &SchemaError{Field: f.key, Reason: "must be a string"}
		}
	}

	percents := []struct {
		key string
		dst *Percent
	}{
		{FieldUpwardClose, &t.UpwardClose},
		{FieldDownwardClose, &t.DownwardClose},
		{FieldFlatClose, &t.FlatClose},
	}
	for _, f := range percents {
		v, ok := raw[f.key]
		if !ok {
			return &SchemaError{Field: f.key, Reason: "missing"}
		}
		if err := f.dst.UnmarshalJSON(v); err != nil {
			return &SchemaError{Field: f.key, Reason: err.Error()}
		}
	}
	return nil
}
