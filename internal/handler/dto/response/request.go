package response

import (
	"time"

	"lendhub/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ItemRequestResponse struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	Created     time.Time           `json:"created"`
	Items       []ItemShortResponse `json:"items"`
}

func FromItemRequestView(v *queries.ItemRequestView) *ItemRequestResponse {
	var resp ItemRequestResponse
	_ = copier.Copy(&resp, v)
	if resp.Items == nil {
		resp.Items = []ItemShortResponse{}
	}
	return &resp
}

func FromItemRequestViews(vs []queries.ItemRequestView) []*ItemRequestResponse {
	out := make([]*ItemRequestResponse, len(vs))
	for i := range vs {
		out[i] = FromItemRequestView(&vs[i])
	}
	return out
}
