package nai

import (
	"context"
	"net/http"
)

type operationsService struct {
	client *Client
}

func (s *operationsService) Data(ctx context.Context) (*OperationsData, error) {
	const route = "/user/operations-data"

	var resp OperationsData
	err := s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     route,
		result:   &resp,
		resource: "operations_data",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *operationsService) CompanyProfile(ctx context.Context) (*CompanyProfile, error) {
	const route = "/user/company-profile"

	var resp CompanyProfile
	err := s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     route,
		result:   &resp,
		resource: "company_profile",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
