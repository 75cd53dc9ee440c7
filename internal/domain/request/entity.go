package request

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyDescription = errors.New("request description cannot be empty")

// ItemRequest is a "looking for" note: a user describes a thing they need, and
// other users may list items answering it.
type ItemRequest struct {
	id          int64
	requestorID int64
	description string
	created     time.Time
}

func NewItemRequest(requestorID int64, description string, created time.Time) (*ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &ItemRequest{
		requestorID: requestorID,
		description: description,
		created:     created,
	}, nil
}

func Reconstruct(id, requestorID int64, description string, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requestorID: requestorID,
		description: description,
		created:     created,
	}
}

func (r *ItemRequest) ID() int64           { return r.id }
func (r *ItemRequest) RequestorID() int64  { return r.requestorID }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) Created() time.Time  { return r.created }
