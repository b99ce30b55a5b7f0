package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/amigo/internal/board"
	"github.com/mmynk/amigo/internal/middleware"
	"github.com/mmynk/amigo/internal/models"
	"github.com/mmynk/amigo/internal/party"
	"github.com/mmynk/amigo/internal/session"
)

// PartyServiceName is the fully-qualified name of the PartyService service.
const PartyServiceName = "party.v1.PartyService"

// Procedure paths of PartyService.
const (
	PartyServiceEnterProcedure         = "/party.v1.PartyService/Enter"
	PartyServiceSubmitEmailProcedure   = "/party.v1.PartyService/SubmitEmail"
	PartyServiceSubmitNameProcedure    = "/party.v1.PartyService/SubmitName"
	PartyServiceGetDashboardProcedure  = "/party.v1.PartyService/GetDashboard"
	PartyServiceRevealProcedure        = "/party.v1.PartyService/Reveal"
	PartyServiceAddWishProcedure       = "/party.v1.PartyService/AddWish"
	PartyServiceAddSuggestionProcedure = "/party.v1.PartyService/AddSuggestion"
	PartyServiceAskSuggestionProcedure = "/party.v1.PartyService/AskSuggestion"
)

// ErrNotOnDashboard is returned by dashboard operations before onboarding is complete.
var ErrNotOnDashboard = errors.New("onboarding is not complete")

// PartyService implements the Connect PartyService.
type PartyService struct {
	party  *party.Controller
	tokens *session.Manager
	stores func(origin string) party.Store
}

// NewPartyService creates a new PartyService. stores returns an origin's persisted state.
func NewPartyService(p *party.Controller, tokens *session.Manager, stores func(origin string) party.Store) *PartyService {
	return &PartyService{party: p, tokens: tokens, stores: stores}
}

// NewPartyServiceHandler builds an HTTP handler for every PartyService procedure and
// returns the path to mount it on.
func NewPartyServiceHandler(svc *PartyService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(PartyServiceEnterProcedure, connect.NewUnaryHandler(PartyServiceEnterProcedure, svc.Enter, opts...))
	mux.Handle(PartyServiceSubmitEmailProcedure, connect.NewUnaryHandler(PartyServiceSubmitEmailProcedure, svc.SubmitEmail, opts...))
	mux.Handle(PartyServiceSubmitNameProcedure, connect.NewUnaryHandler(PartyServiceSubmitNameProcedure, svc.SubmitName, opts...))
	mux.Handle(PartyServiceGetDashboardProcedure, connect.NewUnaryHandler(PartyServiceGetDashboardProcedure, svc.GetDashboard, opts...))
	mux.Handle(PartyServiceRevealProcedure, connect.NewUnaryHandler(PartyServiceRevealProcedure, svc.Reveal, opts...))
	mux.Handle(PartyServiceAddWishProcedure, connect.NewUnaryHandler(PartyServiceAddWishProcedure, svc.AddWish, opts...))
	mux.Handle(PartyServiceAddSuggestionProcedure, connect.NewUnaryHandler(PartyServiceAddSuggestionProcedure, svc.AddSuggestion, opts...))
	mux.Handle(PartyServiceAskSuggestionProcedure, connect.NewUnaryHandler(PartyServiceAskSuggestionProcedure, svc.AskSuggestion, opts...))
	return "/" + PartyServiceName + "/", mux
}

func (s *PartyService) restore(ctx context.Context, token string) (string, models.AppState) {
	origin := middleware.GetOrigin(ctx)
	return origin, s.tokens.Restore(origin, token)
}

func (s *PartyService) reply(origin string, st models.AppState, accepted bool) (*StateReply, error) {
	token, err := s.tokens.Encode(origin, st)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return &StateReply{State: token, Stage: st.Session.Stage, Accepted: accepted}, nil
}

func saveError(procedure, origin string, err error) error {
	slog.Error("Failed to save", "procedure", procedure, "origin", origin, "error", err)
	return connect.NewError(connect.CodeUnavailable, err)
}

func requireDashboard(st models.AppState) error {
	if st.Session.Stage != models.StageDashboard {
		return connect.NewError(connect.CodeFailedPrecondition, ErrNotOnDashboard)
	}
	return nil
}

// Enter resumes onboarding from the origin's stored records.
func (s *PartyService) Enter(ctx context.Context, req *connect.Request[EnterRequest]) (*connect.Response[StateReply], error) {
	origin, st := s.restore(ctx, req.Msg.State)
	before := st.Session.Stage
	st = s.party.Enter(ctx, s.stores(origin), st)

	slog.Info("Enter", "origin", origin, "stage", st.Session.Stage)

	resp, err := s.reply(origin, st, before != st.Session.Stage)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// SubmitEmail registers the participant's email.
func (s *PartyService) SubmitEmail(ctx context.Context, req *connect.Request[SubmitEmailRequest]) (*connect.Response[StateReply], error) {
	origin, st := s.restore(ctx, req.Msg.State)
	st, ok, err := s.party.SubmitEmail(ctx, s.stores(origin), st, req.Msg.Email)
	if err != nil {
		return nil, saveError(PartyServiceSubmitEmailProcedure, origin, err)
	}

	resp, err := s.reply(origin, st, ok)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// SubmitName registers the participant's display name.
func (s *PartyService) SubmitName(ctx context.Context, req *connect.Request[SubmitNameRequest]) (*connect.Response[StateReply], error) {
	origin, st := s.restore(ctx, req.Msg.State)
	st, ok, err := s.party.SubmitName(ctx, s.stores(origin), st, req.Msg.Name)
	if err != nil {
		return nil, saveError(PartyServiceSubmitNameProcedure, origin, err)
	}

	resp, err := s.reply(origin, st, ok)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// GetDashboard returns everything the dashboard shows.
func (s *PartyService) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardReply], error) {
	origin, st := s.restore(ctx, req.Msg.State)
	view, ok := s.party.Dashboard(ctx, s.stores(origin), st)
	if !ok {
		return nil, connect.NewError(connect.CodeFailedPrecondition, ErrNotOnDashboard)
	}

	rules := make([]Rule, 0, len(view.Rules))
	for _, r := range view.Rules {
		rules = append(rules, Rule{Icon: r.Icon, Title: r.Title, Text: r.Text})
	}
	d := Dashboard{
		Title:             view.Title,
		Email:             view.Email,
		DisplayName:       view.DisplayName,
		Revealed:          view.Revealed,
		EventDate:         view.EventDate,
		Remaining:         view.Remaining,
		Rules:             rules,
		MyWishes:          view.MyWishes,
		VisibleWishes:     view.VisibleWishes,
		Suggestions:       view.Suggestions,
		SuggestConfigured: view.SuggestConfigured,
	}
	if view.Revealed {
		d.Recipient = view.Recipient
	}

	token, err := s.tokens.Encode(origin, st)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&GetDashboardReply{State: token, Dashboard: d}), nil
}

// Reveal opens the gift box.
func (s *PartyService) Reveal(ctx context.Context, req *connect.Request[RevealRequest]) (*connect.Response[StateReply], error) {
	origin, st := s.restore(ctx, req.Msg.State)
	if err := requireDashboard(st); err != nil {
		return nil, err
	}

	resp, err := s.reply(origin, s.party.Reveal(st), true)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// AddWish appends a gift idea for the participant.
func (s *PartyService) AddWish(ctx context.Context, req *connect.Request[AddWishRequest]) (*connect.Response[StateReply], error) {
	origin, st := s.restore(ctx, req.Msg.State)
	if err := requireDashboard(st); err != nil {
		return nil, err
	}
	st, ok, err := s.party.AddWish(ctx, s.stores(origin), st, req.Msg.Item)
	if err != nil {
		return nil, saveError(PartyServiceAddWishProcedure, origin, err)
	}

	resp, err := s.reply(origin, st, ok)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// AddSuggestion appends a dinner suggestion by the participant.
func (s *PartyService) AddSuggestion(ctx context.Context, req *connect.Request[AddSuggestionRequest]) (*connect.Response[StateReply], error) {
	origin, st := s.restore(ctx, req.Msg.State)
	if err := requireDashboard(st); err != nil {
		return nil, err
	}
	st, ok, err := s.party.AddSuggestion(ctx, s.stores(origin), st, req.Msg.Dish)
	if err != nil {
		return nil, saveError(PartyServiceAddSuggestionProcedure, origin, err)
	}

	resp, err := s.reply(origin, st, ok)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// AskSuggestion asks the suggestion service for gift ideas. It never fails because of
// the upstream service: failures come back as the result text.
func (s *PartyService) AskSuggestion(ctx context.Context, req *connect.Request[AskSuggestionRequest]) (*connect.Response[AskSuggestionReply], error) {
	origin, st := s.restore(ctx, req.Msg.State)
	if err := requireDashboard(st); err != nil {
		return nil, err
	}
	accepted := board.ValidItem(req.Msg.Prompt)
	st = s.party.AskSuggestion(ctx, origin, st, req.Msg.Prompt)

	resp, err := s.reply(origin, st, accepted)
	if err != nil {
		return nil, err
	}
	out := &AskSuggestionReply{StateReply: *resp}
	if accepted {
		out.Result = st.SuggestResult
	}
	return connect.NewResponse(out), nil
}
