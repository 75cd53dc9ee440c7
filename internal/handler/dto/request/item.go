package request

import (
	"strings"

	"lendhub/internal/usecase/commands"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func (r CreateItemRequest) ToInput() commands.CreateItemInput {
	return commands.CreateItemInput{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Available:   *r.Available,
		RequestID:   r.RequestID,
	}
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

func (r UpdateItemRequest) ToInput() commands.UpdateItemInput {
	return commands.UpdateItemInput{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r CreateCommentRequest) ToInput() commands.AddCommentInput {
	return commands.AddCommentInput{Text: r.Text}
}
