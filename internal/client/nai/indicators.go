package nai

import (
	"context"
	"net/http"
	"net/url"
)

type indicatorService struct {
	client *Client
}

func (s *indicatorService) List(ctx context.Context, params *ListParams) (*IndicatorList, error) {
	const route = "/indicators"

	var resp IndicatorList
	err := s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     route,
		query:    params.values(),
		result:   &resp,
		resource: "indicator_list",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *indicatorService) History(ctx context.Context, id string, params *HistoryParams) (*IndicatorHistory, error) {
	route := "/indicators/" + url.PathEscape(id) + "/history"

	var resp IndicatorHistory
	err := s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     route,
		query:    params.values(),
		result:   &resp,
		resource: "indicator_history",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
