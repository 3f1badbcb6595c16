// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is a successful response after envelope normalization.
//
// The store backend answers either `{"data": {...}}` or a flattened `{...}`.
// Both are accepted; nothing past this boundary needs to know which one the
// server used.
type Payload struct {
	// Message is the top-level "message", if any.
	Message string

	// User is the "user" object, if any.
	User *User

	// Token is the bearer token, if any.
	Token string

	// Data is the normalized body: the value of "data" when present,
	// otherwise the whole body.
	Data json.RawMessage
}

// Decode unmarshals the normalized body into target.
func (payload *Payload) Decode(target any) error {
	if len(payload.Data) == 0 {
		return fmt.Errorf("api_payload_empty")
	}
	if err := json.Unmarshal(payload.Data, target); err != nil {
		return fmt.Errorf("api_payload_decode_failed: %w", err)
	}
	return nil
}

// sessionFields is the part of a body that may carry a session.
type sessionFields struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

/*
Normalize turns a raw 2xx body into a [Payload].

Lookup order for user and token: inside "data" first, then the top level.
An empty body yields an empty payload.

Returns:
  - *Payload: The normalized payload
  - error: The body is not valid JSON
*/
func Normalize(body []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Payload{}, nil
	}

	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("api_payload_invalid_json")
	}

	payload := &Payload{Data: json.RawMessage(trimmed)}

	// Only objects carry an envelope.
	if trimmed[0] != '{' {
		return payload, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("api_payload_decode_failed: %w", err)
	}

	if raw, ok := envelope["message"]; ok {
		_ = json.Unmarshal(raw, &payload.Message)
	}

	var outer sessionFields
	_ = json.Unmarshal(trimmed, &outer)

	var inner sessionFields
	if raw, ok := envelope["data"]; ok && !isNull(raw) {
		payload.Data = raw
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
			_ = json.Unmarshal(raw, &inner)
		}
	}

	payload.User = inner.User
	if payload.User == nil {
		payload.User = outer.User
	}

	payload.Token = inner.Token
	if payload.Token == "" {
		payload.Token = outer.Token
	}

	return payload, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
