package domain

import (
	"encoding/json"
	"fmt"
)

// FieldName identifies a trackable task field in a change set.
type FieldName string

const (
	FieldTitle       FieldName = "Title"
	FieldDescription FieldName = "Description"
	FieldDueDate     FieldName = "DueDate"
	FieldStatus      FieldName = "Status"
)

// FieldChange records one before/after pair for a tracked field.
type FieldChange struct {
	Before string `json:"Before"`
	After  string `json:"After"`
}

// ChangeSet maps tracked field names to their before/after pairs for one
// task mutation.
type ChangeSet map[FieldName]FieldChange

// Empty reports whether the change set records no changes.
func (c ChangeSet) Empty() bool {
	return len(c) == 0
}

// Encode serializes the change set to the stable JSON blob persisted on
// history entries, e.g. {"Title":{"Before":"A","After":"B"}}. Keys are
// emitted in sorted order, so equal change sets encode identically.
func (c ChangeSet) Encode() (string, error) {
	blob, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode change set: %w", err)
	}
	return string(blob), nil
}

// DecodeChangeSet parses a history entry blob back into a change set.
func DecodeChangeSet(blob string) (ChangeSet, error) {
	var changes ChangeSet
	if err := json.Unmarshal([]byte(blob), &changes); err != nil {
		return nil, fmt.Errorf("decode change set: %w", err)
	}
	return changes, nil
}

// commentEvent is the history payload recorded when a comment is added.
type commentEvent struct {
	Action  string `json:"Action"`
	Comment string `json:"Comment"`
}

// EncodeCommentEvent serializes the history blob describing a comment
// addition, including the comment text.
func EncodeCommentEvent(body string) (string, error) {
	payload := map[string]commentEvent{
		"Comment": {
			Action:  "Added Comment",
			Comment: "Comment added: " + body,
		},
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode comment event: %w", err)
	}
	return string(blob), nil
}
