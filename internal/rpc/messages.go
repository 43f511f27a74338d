package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/escalation"
	"github.com/wdaust/bjb-case-opening-flowchart-sub001/internal/lci"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region types
// ScoreReply is the ComputeLCI response.
type ScoreReply struct {
	Granularity lci.Granularity `json:"granularity"`
	Scope       string          `json:"scope,omitempty"`
	AsOf        string          `json:"as_of"`
	Result      lci.Result      `json:"result"`
}

// EscalationsReply is the DeriveEscalations response.
type EscalationsReply struct {
	AsOf  string            `json:"as_of"`
	Count int               `json:"count"`
	Items []escalation.Item `json:"items"`
}

// OfficesReply is the ListOffices response.
type OfficesReply struct {
	Offices []string `json:"offices"`
}

type scoreRequest struct {
	Granularity lci.Granularity `json:"granularity"`
	ID          string          `json:"id"`
}

type caseRequest struct {
	CaseID string `json:"case_id"`
}

// #endregion types

// #region conversion
// toStruct converts a JSON-tagged Go value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	st := new(structpb.Struct)
	if err := protojson.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("struct from json: %w", err)
	}
	return st, nil
}

// fromStruct decodes a protobuf Struct into a JSON-tagged Go value. A nil
// Struct leaves v untouched.
func fromStruct(st *structpb.Struct, v any) error {
	if st == nil {
		return nil
	}
	data, err := protojson.Marshal(st)
	if err != nil {
		return fmt.Errorf("struct to json: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}
	return nil
}

// #endregion conversion
