package response

import (
	"lendhub/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromUserViews(vs []queries.UserView) []*UserResponse {
	out := make([]*UserResponse, len(vs))
	for i := range vs {
		out[i] = FromUserView(&vs[i])
	}
	return out
}
