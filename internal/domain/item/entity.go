package item

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName        = errors.New("item name cannot be empty")
	ErrEmptyDescription = errors.New("item description cannot be empty")
)

// Item is a listed thing that can be rented. Availability is a listing flag
// set by the owner; bookings never mutate it.
type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
	requestID   *int64
}

func NewItem(ownerID int64, name, description string, available bool, requestID *int64) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}, nil
}

func ReconstructItem(id, ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}
}

func (i *Item) OwnedBy(userID int64) bool {
	return i.ownerID == userID
}

func (i *Item) Rename(name string) {
	i.name = name
}

func (i *Item) Describe(description string) {
	i.description = description
}

func (i *Item) SetAvailable(available bool) {
	i.available = available
}

func (i *Item) ID() int64          { return i.id }
func (i *Item) OwnerID() int64     { return i.ownerID }
func (i *Item) Name() string       { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool    { return i.available }
func (i *Item) RequestID() *int64  { return i.requestID }

const MaxCommentLength = 1000

var (
	ErrEmptyComment   = errors.New("comment text cannot be empty")
	ErrCommentTooLong = errors.New("comment text exceeds maximum length")
)

// Comment is an append-only note a past renter leaves on an item. Comments are
// never edited or deleted.
type Comment struct {
	id       int64
	itemID   int64
	authorID int64
	text     string
	created  time.Time
}

func NewComment(itemID, authorID int64, text string, created time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if len(text) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	return &Comment{
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  created,
	}, nil
}

func ReconstructComment(id, itemID, authorID int64, text string, created time.Time) *Comment {
	return &Comment{
		id:       id,
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  created,
	}
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) AuthorID() int64    { return c.authorID }
func (c *Comment) Text() string       { return c.text }
func (c *Comment) Created() time.Time { return c.created }
