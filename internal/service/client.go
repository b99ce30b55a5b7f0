package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/amigo/internal/middleware"
)

// PartyServiceClient is a client for the party.v1.PartyService service.
type PartyServiceClient struct {
	enter         *connect.Client[EnterRequest, StateReply]
	submitEmail   *connect.Client[SubmitEmailRequest, StateReply]
	submitName    *connect.Client[SubmitNameRequest, StateReply]
	getDashboard  *connect.Client[GetDashboardRequest, GetDashboardReply]
	reveal        *connect.Client[RevealRequest, StateReply]
	addWish       *connect.Client[AddWishRequest, StateReply]
	addSuggestion *connect.Client[AddSuggestionRequest, StateReply]
	askSuggestion *connect.Client[AskSuggestionRequest, AskSuggestionReply]
}

// NewPartyServiceClient constructs a client for the PartyService served at baseURL.
// Calls must carry an origin; see WithOrigin.
func NewPartyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PartyServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &PartyServiceClient{
		enter:         connect.NewClient[EnterRequest, StateReply](httpClient, baseURL+PartyServiceEnterProcedure, opts...),
		submitEmail:   connect.NewClient[SubmitEmailRequest, StateReply](httpClient, baseURL+PartyServiceSubmitEmailProcedure, opts...),
		submitName:    connect.NewClient[SubmitNameRequest, StateReply](httpClient, baseURL+PartyServiceSubmitNameProcedure, opts...),
		getDashboard:  connect.NewClient[GetDashboardRequest, GetDashboardReply](httpClient, baseURL+PartyServiceGetDashboardProcedure, opts...),
		reveal:        connect.NewClient[RevealRequest, StateReply](httpClient, baseURL+PartyServiceRevealProcedure, opts...),
		addWish:       connect.NewClient[AddWishRequest, StateReply](httpClient, baseURL+PartyServiceAddWishProcedure, opts...),
		addSuggestion: connect.NewClient[AddSuggestionRequest, StateReply](httpClient, baseURL+PartyServiceAddSuggestionProcedure, opts...),
		askSuggestion: connect.NewClient[AskSuggestionRequest, AskSuggestionReply](httpClient, baseURL+PartyServiceAskSuggestionProcedure, opts...),
	}
}

// WithOrigin sends origin with every call made by the client.
func WithOrigin(origin string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set(middleware.OriginHeader, origin)
			return next(ctx, req)
		}
	}))
}

// Enter calls party.v1.PartyService.Enter.
func (c *PartyServiceClient) Enter(ctx context.Context, req *connect.Request[EnterRequest]) (*connect.Response[StateReply], error) {
	return c.enter.CallUnary(ctx, req)
}

// SubmitEmail calls party.v1.PartyService.SubmitEmail.
func (c *PartyServiceClient) SubmitEmail(ctx context.Context, req *connect.Request[SubmitEmailRequest]) (*connect.Response[StateReply], error) {
	return c.submitEmail.CallUnary(ctx, req)
}

// SubmitName calls party.v1.PartyService.SubmitName.
func (c *PartyServiceClient) SubmitName(ctx context.Context, req *connect.Request[SubmitNameRequest]) (*connect.Response[StateReply], error) {
	return c.submitName.CallUnary(ctx, req)
}

// GetDashboard calls party.v1.PartyService.GetDashboard.
func (c *PartyServiceClient) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardReply], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

// Reveal calls party.v1.PartyService.Reveal.
func (c *PartyServiceClient) Reveal(ctx context.Context, req *connect.Request[RevealRequest]) (*connect.Response[StateReply], error) {
	return c.reveal.CallUnary(ctx, req)
}

// AddWish calls party.v1.PartyService.AddWish.
func (c *PartyServiceClient) AddWish(ctx context.Context, req *connect.Request[AddWishRequest]) (*connect.Response[StateReply], error) {
	return c.addWish.CallUnary(ctx, req)
}

// AddSuggestion calls party.v1.PartyService.AddSuggestion.
func (c *PartyServiceClient) AddSuggestion(ctx context.Context, req *connect.Request[AddSuggestionRequest]) (*connect.Response[StateReply], error) {
	return c.addSuggestion.CallUnary(ctx, req)
}

// AskSuggestion calls party.v1.PartyService.AskSuggestion.
func (c *PartyServiceClient) AskSuggestion(ctx context.Context, req *connect.Request[AskSuggestionRequest]) (*connect.Response[AskSuggestionReply], error) {
	return c.askSuggestion.CallUnary(ctx, req)
}
