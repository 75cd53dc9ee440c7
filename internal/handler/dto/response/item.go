package response

import (
	"time"

	"lendhub/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	var resp ItemResponse
	_ = copier.Copy(&resp, v)
	if resp.Comments == nil {
		resp.Comments = []CommentResponse{}
	}
	return &resp
}

func FromItemViews(vs []queries.ItemView) []*ItemResponse {
	out := make([]*ItemResponse, len(vs))
	for i := range vs {
		out[i] = FromItemView(&vs[i])
	}
	return out
}

func FromCommentView(v *queries.CommentView) *CommentResponse {
	var resp CommentResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
