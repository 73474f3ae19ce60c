package entity

import (
	"encoding/json"
	"sort"
)

// Reserved top-level fields owned by the service. Payload keys with these
// names are stripped on ingest and re-attached from metadata on output.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Item is one stored JSON document plus identity and timestamp metadata.
// On the wire and in storage the payload keys sit flattened alongside
// id/created_at/updated_at at the top level.
type Item struct {
	ID        string
	CreatedAt string
	UpdatedAt string
	Payload   map[string]interface{}
}

func (i Item) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(i.Payload)+3)
	for k, v := range i.Payload {
		flat[k] = v
	}
	flat[FieldID] = i.ID
	flat[FieldCreatedAt] = i.CreatedAt
	flat[FieldUpdatedAt] = i.UpdatedAt
	return json.Marshal(flat)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if id, ok := flat[FieldID].(string); ok {
		i.ID = id
	}
	if createdAt, ok := flat[FieldCreatedAt].(string); ok {
		i.CreatedAt = createdAt
	}
	if updatedAt, ok := flat[FieldUpdatedAt].(string); ok {
		i.UpdatedAt = updatedAt
	}
	delete(flat, FieldID)
	delete(flat, FieldCreatedAt)
	delete(flat, FieldUpdatedAt)
	i.Payload = flat
	return nil
}

// StripReserved removes service-owned fields from a caller payload so they
// cannot shadow the generated metadata.
func StripReserved(payload map[string]interface{}) map[string]interface{} {
	if payload == nil {
		return map[string]interface{}{}
	}
	delete(payload, FieldID)
	delete(payload, FieldCreatedAt)
	delete(payload, FieldUpdatedAt)
	return payload
}

// SortByID orders items by id. Backend listing order is key-lexicographic
// and not a contract; callers wanting stable output sort explicitly.
func SortByID(items []Item) {
	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })
}
