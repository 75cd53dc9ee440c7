package response

import (
	"time"

	"lendhub/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID     int64             `json:"id"`
	Start  time.Time         `json:"start"`
	End    time.Time         `json:"end"`
	Status string            `json:"status"`
	Item   ItemShortResponse `json:"item"`
	Booker UserShortResponse `json:"booker"`
}

type ItemShortResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserShortResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	resp.Status = v.Status.String()
	return &resp
}

func FromBookingViews(vs []queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(vs))
	for i := range vs {
		out[i] = FromBookingView(&vs[i])
	}
	return out
}
