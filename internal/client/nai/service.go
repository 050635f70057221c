package nai

import "context"

type AuthService interface {
	// Login exchanges credentials for a token pair and persists it.
	Login(ctx context.Context, creds Credentials) error

	// Register creates an account, then persists the returned pair.
	Register(ctx context.Context, reg Registration) error

	// Logout revokes the session remotely on a best-effort basis and
	// clears the stored pair regardless of the remote outcome.
	Logout(ctx context.Context) error
}

type DashboardService interface {
	Admin(ctx context.Context) (*DashboardSummary, error)
}

type IndicatorService interface {
	List(ctx context.Context, params *ListParams) (*IndicatorList, error)
	History(ctx context.Context, id string, params *HistoryParams) (*IndicatorHistory, error)
}

type InsightService interface {
	List(ctx context.Context, params *ListParams) (*InsightList, error)
}

type OperationsService interface {
	Data(ctx context.Context) (*OperationsData, error)
	CompanyProfile(ctx context.Context) (*CompanyProfile, error)
}
