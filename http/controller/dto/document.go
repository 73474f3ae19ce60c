package dto

import "github.com/tnqbao/gau-document-service/entity"

// ListResponseDTO wraps a collection listing.
type ListResponseDTO struct {
	Collection string        `json:"collection"`
	Count      int           `json:"count"`
	Items      []entity.Item `json:"items"`
}

// BulkCreateResponseDTO reports the outcome of a bulk create.
type BulkCreateResponseDTO struct {
	Message string        `json:"message"`
	Count   int           `json:"count"`
	Items   []entity.Item `json:"items"`
}

// DeleteResponseDTO acknowledges a single-item delete.
type DeleteResponseDTO struct {
	Message string `json:"message"`
}

// DeleteAllResponseDTO acknowledges a collection purge.
type DeleteAllResponseDTO struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
