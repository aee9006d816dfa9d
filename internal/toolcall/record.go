package toolcall

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/toolstatus/internal/logger"
	"gopkg.in/yaml.v3"
)

// Wire states of a tool invocation record.
const (
	StatePartialCall = "partial-call" // arguments still streaming
	StateCall        = "call"         // arguments complete, awaiting result
	StateResult      = "result"       // finished with a result
)

// Wire field names of a tool invocation record.
const (
	fieldID       = "toolCallId"
	fieldToolName = "toolName"
	fieldArgs     = "args"
	fieldState    = "state"
	fieldResult   = "result"
)

// DecodeRecord converts a decoded wire record into an Invocation.
// A record is completed only when its state is "result" and it carries a
// result field; every other combination is pending. Missing or mistyped
// fields decode to zero values.
func DecodeRecord(rec map[string]any) Invocation {
	inv := Invocation{
		Args:   rec[fieldArgs],
		Status: Pending{},
	}
	inv.ID, _ = rec[fieldID].(string)
	inv.ToolName, _ = rec[fieldToolName].(string)

	state, _ := rec[fieldState].(string)
	if result, ok := rec[fieldResult]; ok && state == StateResult {
		inv.Status = Completed{Result: result}
	}
	return inv
}

// EncodeRecord converts an Invocation into its wire record.
// Pending invocations are encoded with state "call".
func EncodeRecord(inv Invocation) map[string]any {
	rec := map[string]any{
		fieldID:       inv.ID,
		fieldToolName: inv.ToolName,
		fieldArgs:     inv.Args,
		fieldState:    StateCall,
	}
	if result, ok := inv.Result(); ok {
		rec[fieldState] = StateResult
		rec[fieldResult] = result
	}
	return rec
}

// MarshalRecord encodes inv as a JSON wire record.
func MarshalRecord(inv Invocation) ([]byte, error) {
	data, err := json.Marshal(EncodeRecord(inv))
	if err != nil {
		return nil, fmt.Errorf("encoding record %s: %w", inv.ID, err)
	}
	return data, nil
}

// UnmarshalRecord decodes a single JSON wire record.
func UnmarshalRecord(data []byte) (Invocation, error) {
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return Invocation{}, fmt.Errorf("decoding record: %w", err)
	}
	if rec == nil {
		return Invocation{}, errors.New("decoding record: null record")
	}
	return DecodeRecord(rec), nil
}

// ReadRecords reads every record from r. The input may be a JSON array of
// records, a stream of JSON objects (one per line or concatenated), or a
// YAML stream whose documents are records or lists of records. Input that
// starts like JSON but is not valid JSON is retried as YAML, so flow-style
// YAML such as {toolName: x} is accepted.
func ReadRecords(r io.Reader) ([]Invocation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var raw []any
	switch trimmed[0] {
	case '[', '{':
		raw, err = readJSON(trimmed)
		if err != nil {
			if yamlRaw, yamlErr := readYAML(trimmed); yamlErr == nil {
				logger.Debug("Records are not JSON, decoded as flow YAML: %v", err)
				raw, err = yamlRaw, nil
			}
		}
	default:
		raw, err = readYAML(trimmed)
	}
	if err != nil {
		return nil, err
	}

	invs := make([]Invocation, 0, len(raw))
	for i, v := range raw {
		rec, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected object, got %T", i, v)
		}
		invs = append(invs, DecodeRecord(rec))
	}

	logger.Debug("Decoded %d tool invocation records", len(invs))
	return invs, nil
}

func readJSON(data []byte) ([]any, error) {
	var out []any
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("decoding JSON record %d: %w", len(out), err)
		}
		out = appendRecords(out, v)
	}
}

func readYAML(data []byte) ([]any, error) {
	var out []any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("decoding YAML record %d: %w", len(out), err)
		}
		if v == nil {
			continue // empty document
		}
		out = appendRecords(out, v)
	}
}

// appendRecords flattens a top-level list into individual records.
func appendRecords(out []any, v any) []any {
	if list, ok := v.([]any); ok {
		return append(out, list...)
	}
	return append(out, v)
}

// Latest keeps the last record for each ID, in order of first appearance.
// Records without an ID are always kept.
func Latest(invs []Invocation) []Invocation {
	out := make([]Invocation, 0, len(invs))
	index := make(map[string]int, len(invs))
	for _, inv := range invs {
		if inv.ID == "" {
			out = append(out, inv)
			continue
		}
		if i, ok := index[inv.ID]; ok {
			out[i] = inv
			continue
		}
		index[inv.ID] = len(out)
		out = append(out, inv)
	}
	return out
}
