package nai

import (
	"context"
	"net/http"
)

type dashboardService struct {
	client *Client
}

func (s *dashboardService) Admin(ctx context.Context) (*DashboardSummary, error) {
	const route = "/admin/dashboard"

	var resp DashboardSummary
	err := s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     route,
		result:   &resp,
		resource: "dashboard",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
