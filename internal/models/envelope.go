package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	StatusNoData  = "no_data"
	StatusSuccess = "success"

	// KeyGeneratedOn is the canonical timestamp key of the envelope.
	KeyGeneratedOn = "Generated on"
	// KeyDataGeneratedOn is an older spelling still accepted on input.
	KeyDataGeneratedOn = "Data Generated On"
	KeyTickers         = "Tickers"
)

// SchemaError reports a response body whose shape does not match the
// expected envelope.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid envelope: %s: %s", e.Field, e.Reason)
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// Envelope is the top-level object served by the ticker data endpoint. It is
// either the no-data state (Status and Message set) or a report (GeneratedOn
// and Tickers set).
type Envelope struct {
	Status      string
	Message     string
	GeneratedOn string
	Tickers     []TickerRecord
}

func (e *Envelope) NoData() bool {
	return e.Status == StatusNoData
}

// DecodeEnvelope validates and decodes a ticker data response body.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &SchemaError{Field: "body", Reason: "not a JSON object: " + err.Error()}
	}

	env := &Envelope{}
	if v, ok := raw["status"]; ok {
		if err := json.Unmarshal(v, &env.Status); err != nil {
			return nil, &SchemaError{Field: "status", Reason: "must be a string"}
		}
	}
	if v, ok := raw["message"]; ok {
		if err := json.Unmarshal(v, &env.Message); err != nil {
			return nil, &SchemaError{Field: "message", Reason: "must be a string"}
		}
	}

	if env.NoData() {
		if _, ok := raw["message"]; !ok {
			return nil, &SchemaError{Field: "message", Reason: "missing for no_data status"}
		}
		return env, nil
	}

	tickersRaw, ok := raw[KeyTickers]
	if !ok {
		if env.Status != "" {
			return nil, &SchemaError{Field: "status", Reason: fmt.Sprintf("unexpected status %q: %s", env.Status, env.Message)}
		}
		return nil, &SchemaError{Field: KeyTickers, Reason: "missing"}
	}

	stamp, ok := raw[KeyGeneratedOn]
	if !ok {
		stamp, ok = raw[KeyDataGeneratedOn]
	}
	if !ok {
		return nil, &SchemaError{Field: KeyGeneratedOn, Reason: "missing"}
	}
	if err := json.Unmarshal(stamp, &env.GeneratedOn); err != nil {
		return nil, &SchemaError{Field: KeyGeneratedOn, Reason: "must be a string"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(tickersRaw, &items); err != nil || items == nil {
		return nil, &SchemaError{Field: KeyTickers, Reason: "must be an array"}
	}
	env.Tickers = make([]TickerRecord, 0, len(items))
	for i, item := range items {
		var rec TickerRecord
		if err := rec.UnmarshalJSON(item); err != nil {
			var se *SchemaError
			if errors.As(err, &se) {
				return nil, &SchemaError{Field: fmt.Sprintf("%s[%d].%s", KeyTickers, i, se.Field), Reason: se.Reason}
			}
			return nil, err
		}
		env.Tickers = append(env.Tickers, rec)
	}
	return env, nil
}

// RefreshResult is the body returned by the refresh endpoint.
type RefreshResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Ticker  string `json:"TICKER,omitempty"`
}

func (r *RefreshResult) Success() bool {
	return r.Status == StatusSuccess
}
