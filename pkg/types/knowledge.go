// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// KnowledgeRecord is one trigger/response entry in the private knowledge
// store. A record matches a query through its trigger phrases; the response
// text is the only context the store-grounded answer may use.
type KnowledgeRecord struct {
	// ID is the store-assigned row identifier. Zero for unsaved records.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// TriggerWords are the phrases that activate this record.
	TriggerWords []string `json:"trigger_words" yaml:"trigger_words"`

	// TriggerType labels the matching style (e.g. "exact", "topic").
	TriggerType string `json:"trigger_type,omitempty" yaml:"trigger_type,omitempty"`

	// Response is the stored answer text.
	Response string `json:"response_text" yaml:"response_text"`
}
