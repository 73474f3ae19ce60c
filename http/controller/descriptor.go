package controller

import (
	"net/http"
	"strings"

	"github.com/tnqbao/gau-document-service/entity"
)

// Operation is the closed set of request shapes the service dispatches on.
type Operation int

const (
	OpList Operation = iota
	OpGet
	OpCreate
	OpBulkCreate
	OpMergeUpdate
	OpReplaceUpdate
	OpDeleteItem
	OpDeleteAll
	OpPreflight
)

// Action modifiers recognized in the "request" query parameter. Anything
// else in the query string is ignored.
const (
	actionBulk    = "bulk"
	actionAll     = "all"
	actionReplace = "replace"
)

// Descriptor is the typed form of an inbound request: which operation, on
// which collection, and for item-level operations which id.
type Descriptor struct {
	Op         Operation
	Collection entity.Collection
	ItemID     string
}

// RouteError is a rejected route shape, carrying the status it maps to.
type RouteError struct {
	Status  int
	Message string
}

func (e *RouteError) Error() string { return e.Message }

func badRoute(message string) *RouteError {
	return &RouteError{Status: http.StatusBadRequest, Message: message}
}

// ParseRequest translates (method, path, request modifier) into a
// Descriptor.
//
// Path shape conventions (the path alone cannot distinguish a nested
// collection from an item route, so these are fixed API conventions):
//   - GET/DELETE with ?request=all: the whole path is the collection.
//   - GET without "all": two or more segments address an item (last segment
//     is the id); a single segment lists that collection.
//   - POST: the whole path is the collection; a caller-supplied id travels
//     in the body "id" field. A trailing id-shaped segment is deliberately
//     read as a nested collection name, never as an item id.
//   - PUT/PATCH/DELETE without "all": require an item route (>= 2 segments).
//
// A recognized modifier on a verb it does not belong to is a rejected form.
func ParseRequest(method, path, action string) (*Descriptor, *RouteError) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil, badRoute("Path must include at least a collection name")
	}

	switch action {
	case actionBulk, actionAll, actionReplace:
	default:
		action = ""
	}

	col := entity.Collection(segments)

	switch method {
	case http.MethodOptions:
		return &Descriptor{Op: OpPreflight, Collection: col}, nil

	case http.MethodGet:
		switch action {
		case actionBulk, actionReplace:
			return nil, badRoute("Modifier " + action + " is not valid for GET")
		case actionAll:
			return &Descriptor{Op: OpList, Collection: col}, nil
		}
		if len(segments) == 1 {
			return &Descriptor{Op: OpList, Collection: col}, nil
		}
		return itemDescriptor(OpGet, segments), nil

	case http.MethodPost:
		switch action {
		case actionAll, actionReplace:
			return nil, badRoute("Modifier " + action + " is not valid for POST")
		case actionBulk:
			return &Descriptor{Op: OpBulkCreate, Collection: col}, nil
		}
		return &Descriptor{Op: OpCreate, Collection: col}, nil

	case http.MethodPut:
		switch action {
		case actionBulk, actionAll:
			return nil, badRoute("Modifier " + action + " is not valid for PUT")
		}
		if len(segments) < 2 {
			return nil, badRoute("Item ID is required for PUT/PATCH")
		}
		if action == actionReplace {
			return itemDescriptor(OpReplaceUpdate, segments), nil
		}
		return itemDescriptor(OpMergeUpdate, segments), nil

	case http.MethodPatch:
		if action != "" {
			return nil, badRoute("Modifier " + action + " is not valid for PATCH")
		}
		if len(segments) < 2 {
			return nil, badRoute("Item ID is required for PUT/PATCH")
		}
		return itemDescriptor(OpMergeUpdate, segments), nil

	case http.MethodDelete:
		switch action {
		case actionBulk, actionReplace:
			return nil, badRoute("Modifier " + action + " is not valid for DELETE")
		case actionAll:
			return &Descriptor{Op: OpDeleteAll, Collection: col}, nil
		}
		if len(segments) < 2 {
			return nil, badRoute("Item ID is required for DELETE (or use ?request=all to delete all)")
		}
		return itemDescriptor(OpDeleteItem, segments), nil
	}

	return nil, &RouteError{
		Status:  http.StatusMethodNotAllowed,
		Message: "Method " + method + " is not supported",
	}
}

func itemDescriptor(op Operation, segments []string) *Descriptor {
	return &Descriptor{
		Op:         op,
		Collection: entity.Collection(segments[:len(segments)-1]),
		ItemID:     segments[len(segments)-1],
	}
}

func splitPath(path string) []string {
	segments := []string{}
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
