package nai

import (
	"context"
	"net/http"
)

type insightService struct {
	client *Client
}

func (s *insightService) List(ctx context.Context, params *ListParams) (*InsightList, error) {
	const route = "/business-insights"

	var resp InsightList
	err := s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     route,
		query:    params.values(),
		result:   &resp,
		resource: "insight_list",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
