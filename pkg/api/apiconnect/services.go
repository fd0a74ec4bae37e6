package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pennyworth/pkg/api"
)

// Fully-qualified service names.
const (
	WellnessServiceName = "pennyworth.v1.WellnessService"
	TaxServiceName      = "pennyworth.v1.TaxService"
	IncomeServiceName   = "pennyworth.v1.IncomeService"
	W2ServiceName       = "pennyworth.v1.W2Service"
	ChatServiceName     = "pennyworth.v1.ChatService"
	AuthServiceName     = "pennyworth.v1.AuthService"
	HelpServiceName     = "pennyworth.v1.HelpService"
)

// Procedure paths, in the form "/service/method".
const (
	WellnessServiceCalculateProcedure          = "/pennyworth.v1.WellnessService/Calculate"
	TaxServiceEstimateProcedure                = "/pennyworth.v1.TaxService/Estimate"
	TaxServiceListDeductionCategoriesProcedure = "/pennyworth.v1.TaxService/ListDeductionCategories"
	IncomeServiceGetHistoryProcedure           = "/pennyworth.v1.IncomeService/GetHistory"
	IncomeServicePredictProcedure              = "/pennyworth.v1.IncomeService/Predict"
	IncomeServiceAddRowProcedure               = "/pennyworth.v1.IncomeService/AddRow"
	IncomeServiceRemoveRowProcedure            = "/pennyworth.v1.IncomeService/RemoveRow"
	W2ServiceExtractProcedure                  = "/pennyworth.v1.W2Service/Extract"
	W2ServicePredictLiabilityProcedure         = "/pennyworth.v1.W2Service/PredictLiability"
	ChatServiceSendProcedure                   = "/pennyworth.v1.ChatService/Send"
	ChatServiceGetSessionProcedure             = "/pennyworth.v1.ChatService/GetSession"
	ChatServiceListSessionsProcedure           = "/pennyworth.v1.ChatService/ListSessions"
	AuthServiceRegisterProcedure               = "/pennyworth.v1.AuthService/Register"
	AuthServiceLoginProcedure                  = "/pennyworth.v1.AuthService/Login"
	AuthServiceLogoutProcedure                 = "/pennyworth.v1.AuthService/Logout"
	AuthServiceGetCurrentUserProcedure         = "/pennyworth.v1.AuthService/GetCurrentUser"
	HelpServiceSubmitProcedure                 = "/pennyworth.v1.HelpService/Submit"
	HelpServiceListProcedure                   = "/pennyworth.v1.HelpService/List"
)

// IsProcedure reports whether path belongs to one of the services.
func IsProcedure(path string) bool {
	return strings.HasPrefix(path, "/pennyworth.v1.")
}

// WellnessServiceClient is a client for the pennyworth.v1.WellnessService service.
type WellnessServiceClient interface {
	Calculate(context.Context, *connect.Request[api.CalculateWellnessRequest]) (*connect.Response[api.CalculateWellnessResponse], error)
}

// NewWellnessServiceClient constructs a client for the pennyworth.v1.WellnessService service.
func NewWellnessServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) WellnessServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &wellnessServiceClient{
		calculate: connect.NewClient[api.CalculateWellnessRequest, api.CalculateWellnessResponse](
			httpClient,
			baseURL+WellnessServiceCalculateProcedure,
			opts...,
		),
	}
}

type wellnessServiceClient struct {
	calculate *connect.Client[api.CalculateWellnessRequest, api.CalculateWellnessResponse]
}

// Calculate calls pennyworth.v1.WellnessService.Calculate.
func (c *wellnessServiceClient) Calculate(ctx context.Context, req *connect.Request[api.CalculateWellnessRequest]) (*connect.Response[api.CalculateWellnessResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

// WellnessServiceHandler computes financial wellness ratios.
type WellnessServiceHandler interface {
	Calculate(context.Context, *connect.Request[api.CalculateWellnessRequest]) (*connect.Response[api.CalculateWellnessResponse], error)
}

// NewWellnessServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewWellnessServiceHandler(svc WellnessServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	wellnessServiceCalculateHandler := connect.NewUnaryHandler(
		WellnessServiceCalculateProcedure,
		svc.Calculate,
		opts...,
	)
	return "/pennyworth.v1.WellnessService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case WellnessServiceCalculateProcedure:
			wellnessServiceCalculateHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// TaxServiceClient is a client for the pennyworth.v1.TaxService service.
type TaxServiceClient interface {
	Estimate(context.Context, *connect.Request[api.EstimateTaxRequest]) (*connect.Response[api.EstimateTaxResponse], error)
	ListDeductionCategories(context.Context, *connect.Request[api.ListDeductionCategoriesRequest]) (*connect.Response[api.ListDeductionCategoriesResponse], error)
}

// NewTaxServiceClient constructs a client for the pennyworth.v1.TaxService service.
func NewTaxServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TaxServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &taxServiceClient{
		estimate: connect.NewClient[api.EstimateTaxRequest, api.EstimateTaxResponse](
			httpClient,
			baseURL+TaxServiceEstimateProcedure,
			opts...,
		),
		listDeductionCategories: connect.NewClient[api.ListDeductionCategoriesRequest, api.ListDeductionCategoriesResponse](
			httpClient,
			baseURL+TaxServiceListDeductionCategoriesProcedure,
			opts...,
		),
	}
}

type taxServiceClient struct {
	estimate                *connect.Client[api.EstimateTaxRequest, api.EstimateTaxResponse]
	listDeductionCategories *connect.Client[api.ListDeductionCategoriesRequest, api.ListDeductionCategoriesResponse]
}

// Estimate calls pennyworth.v1.TaxService.Estimate.
func (c *taxServiceClient) Estimate(ctx context.Context, req *connect.Request[api.EstimateTaxRequest]) (*connect.Response[api.EstimateTaxResponse], error) {
	return c.estimate.CallUnary(ctx, req)
}

// ListDeductionCategories calls pennyworth.v1.TaxService.ListDeductionCategories.
func (c *taxServiceClient) ListDeductionCategories(ctx context.Context, req *connect.Request[api.ListDeductionCategoriesRequest]) (*connect.Response[api.ListDeductionCategoriesResponse], error) {
	return c.listDeductionCategories.CallUnary(ctx, req)
}

// TaxServiceHandler estimates tax liability after deductions.
type TaxServiceHandler interface {
	Estimate(context.Context, *connect.Request[api.EstimateTaxRequest]) (*connect.Response[api.EstimateTaxResponse], error)
	ListDeductionCategories(context.Context, *connect.Request[api.ListDeductionCategoriesRequest]) (*connect.Response[api.ListDeductionCategoriesResponse], error)
}

// NewTaxServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTaxServiceHandler(svc TaxServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	taxServiceEstimateHandler := connect.NewUnaryHandler(
		TaxServiceEstimateProcedure,
		svc.Estimate,
		opts...,
	)
	taxServiceListDeductionCategoriesHandler := connect.NewUnaryHandler(
		TaxServiceListDeductionCategoriesProcedure,
		svc.ListDeductionCategories,
		opts...,
	)
	return "/pennyworth.v1.TaxService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TaxServiceEstimateProcedure:
			taxServiceEstimateHandler.ServeHTTP(w, r)
		case TaxServiceListDeductionCategoriesProcedure:
			taxServiceListDeductionCategoriesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// IncomeServiceClient is a client for the pennyworth.v1.IncomeService service.
type IncomeServiceClient interface {
	GetHistory(context.Context, *connect.Request[api.GetHistoryRequest]) (*connect.Response[api.GetHistoryResponse], error)
	Predict(context.Context, *connect.Request[api.PredictIncomeRequest]) (*connect.Response[api.PredictIncomeResponse], error)
	AddRow(context.Context, *connect.Request[api.AddHistoryRowRequest]) (*connect.Response[api.AddHistoryRowResponse], error)
	RemoveRow(context.Context, *connect.Request[api.RemoveHistoryRowRequest]) (*connect.Response[api.RemoveHistoryRowResponse], error)
}

// NewIncomeServiceClient constructs a client for the pennyworth.v1.IncomeService service.
func NewIncomeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) IncomeServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &incomeServiceClient{
		getHistory: connect.NewClient[api.GetHistoryRequest, api.GetHistoryResponse](
			httpClient,
			baseURL+IncomeServiceGetHistoryProcedure,
			opts...,
		),
		predict: connect.NewClient[api.PredictIncomeRequest, api.PredictIncomeResponse](
			httpClient,
			baseURL+IncomeServicePredictProcedure,
			opts...,
		),
		addRow: connect.NewClient[api.AddHistoryRowRequest, api.AddHistoryRowResponse](
			httpClient,
			baseURL+IncomeServiceAddRowProcedure,
			opts...,
		),
		removeRow: connect.NewClient[api.RemoveHistoryRowRequest, api.RemoveHistoryRowResponse](
			httpClient,
			baseURL+IncomeServiceRemoveRowProcedure,
			opts...,
		),
	}
}

type incomeServiceClient struct {
	getHistory *connect.Client[api.GetHistoryRequest, api.GetHistoryResponse]
	predict    *connect.Client[api.PredictIncomeRequest, api.PredictIncomeResponse]
	addRow     *connect.Client[api.AddHistoryRowRequest, api.AddHistoryRowResponse]
	removeRow  *connect.Client[api.RemoveHistoryRowRequest, api.RemoveHistoryRowResponse]
}

// GetHistory calls pennyworth.v1.IncomeService.GetHistory.
func (c *incomeServiceClient) GetHistory(ctx context.Context, req *connect.Request[api.GetHistoryRequest]) (*connect.Response[api.GetHistoryResponse], error) {
	return c.getHistory.CallUnary(ctx, req)
}

// Predict calls pennyworth.v1.IncomeService.Predict.
func (c *incomeServiceClient) Predict(ctx context.Context, req *connect.Request[api.PredictIncomeRequest]) (*connect.Response[api.PredictIncomeResponse], error) {
	return c.predict.CallUnary(ctx, req)
}

// AddRow calls pennyworth.v1.IncomeService.AddRow.
func (c *incomeServiceClient) AddRow(ctx context.Context, req *connect.Request[api.AddHistoryRowRequest]) (*connect.Response[api.AddHistoryRowResponse], error) {
	return c.addRow.CallUnary(ctx, req)
}

// RemoveRow calls pennyworth.v1.IncomeService.RemoveRow.
func (c *incomeServiceClient) RemoveRow(ctx context.Context, req *connect.Request[api.RemoveHistoryRowRequest]) (*connect.Response[api.RemoveHistoryRowResponse], error) {
	return c.removeRow.CallUnary(ctx, req)
}

// IncomeServiceHandler predicts income from the monthly history table and edits the table.
type IncomeServiceHandler interface {
	GetHistory(context.Context, *connect.Request[api.GetHistoryRequest]) (*connect.Response[api.GetHistoryResponse], error)
	Predict(context.Context, *connect.Request[api.PredictIncomeRequest]) (*connect.Response[api.PredictIncomeResponse], error)
	AddRow(context.Context, *connect.Request[api.AddHistoryRowRequest]) (*connect.Response[api.AddHistoryRowResponse], error)
	RemoveRow(context.Context, *connect.Request[api.RemoveHistoryRowRequest]) (*connect.Response[api.RemoveHistoryRowResponse], error)
}

// NewIncomeServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewIncomeServiceHandler(svc IncomeServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	incomeServiceGetHistoryHandler := connect.NewUnaryHandler(
		IncomeServiceGetHistoryProcedure,
		svc.GetHistory,
		opts...,
	)
	incomeServicePredictHandler := connect.NewUnaryHandler(
		IncomeServicePredictProcedure,
		svc.Predict,
		opts...,
	)
	incomeServiceAddRowHandler := connect.NewUnaryHandler(
		IncomeServiceAddRowProcedure,
		svc.AddRow,
		opts...,
	)
	incomeServiceRemoveRowHandler := connect.NewUnaryHandler(
		IncomeServiceRemoveRowProcedure,
		svc.RemoveRow,
		opts...,
	)
	return "/pennyworth.v1.IncomeService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case IncomeServiceGetHistoryProcedure:
			incomeServiceGetHistoryHandler.ServeHTTP(w, r)
		case IncomeServicePredictProcedure:
			incomeServicePredictHandler.ServeHTTP(w, r)
		case IncomeServiceAddRowProcedure:
			incomeServiceAddRowHandler.ServeHTTP(w, r)
		case IncomeServiceRemoveRowProcedure:
			incomeServiceRemoveRowHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// W2ServiceClient is a client for the pennyworth.v1.W2Service service.
type W2ServiceClient interface {
	Extract(context.Context, *connect.Request[api.ExtractW2Request]) (*connect.Response[api.ExtractW2Response], error)
	PredictLiability(context.Context, *connect.Request[api.PredictLiabilityRequest]) (*connect.Response[api.PredictLiabilityResponse], error)
}

// NewW2ServiceClient constructs a client for the pennyworth.v1.W2Service service.
func NewW2ServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) W2ServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &w2ServiceClient{
		extract: connect.NewClient[api.ExtractW2Request, api.ExtractW2Response](
			httpClient,
			baseURL+W2ServiceExtractProcedure,
			opts...,
		),
		predictLiability: connect.NewClient[api.PredictLiabilityRequest, api.PredictLiabilityResponse](
			httpClient,
			baseURL+W2ServicePredictLiabilityProcedure,
			opts...,
		),
	}
}

type w2ServiceClient struct {
	extract          *connect.Client[api.ExtractW2Request, api.ExtractW2Response]
	predictLiability *connect.Client[api.PredictLiabilityRequest, api.PredictLiabilityResponse]
}

// Extract calls pennyworth.v1.W2Service.Extract.
func (c *w2ServiceClient) Extract(ctx context.Context, req *connect.Request[api.ExtractW2Request]) (*connect.Response[api.ExtractW2Response], error) {
	return c.extract.CallUnary(ctx, req)
}

// PredictLiability calls pennyworth.v1.W2Service.PredictLiability.
func (c *w2ServiceClient) PredictLiability(ctx context.Context, req *connect.Request[api.PredictLiabilityRequest]) (*connect.Response[api.PredictLiabilityResponse], error) {
	return c.predictLiability.CallUnary(ctx, req)
}

// W2ServiceHandler reads W-2 uploads and predicts tax liability.
type W2ServiceHandler interface {
	Extract(context.Context, *connect.Request[api.ExtractW2Request]) (*connect.Response[api.ExtractW2Response], error)
	PredictLiability(context.Context, *connect.Request[api.PredictLiabilityRequest]) (*connect.Response[api.PredictLiabilityResponse], error)
}

// NewW2ServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewW2ServiceHandler(svc W2ServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	w2ServiceExtractHandler := connect.NewUnaryHandler(
		W2ServiceExtractProcedure,
		svc.Extract,
		opts...,
	)
	w2ServicePredictLiabilityHandler := connect.NewUnaryHandler(
		W2ServicePredictLiabilityProcedure,
		svc.PredictLiability,
		opts...,
	)
	return "/pennyworth.v1.W2Service/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case W2ServiceExtractProcedure:
			w2ServiceExtractHandler.ServeHTTP(w, r)
		case W2ServicePredictLiabilityProcedure:
			w2ServicePredictLiabilityHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ChatServiceClient is a client for the pennyworth.v1.ChatService service.
type ChatServiceClient interface {
	Send(context.Context, *connect.Request[api.SendChatMessageRequest]) (*connect.ServerStreamForClient[api.SendChatMessageResponse], error)
	GetSession(context.Context, *connect.Request[api.GetChatSessionRequest]) (*connect.Response[api.GetChatSessionResponse], error)
	ListSessions(context.Context, *connect.Request[api.ListChatSessionsRequest]) (*connect.Response[api.ListChatSessionsResponse], error)
}

// NewChatServiceClient constructs a client for the pennyworth.v1.ChatService service.
func NewChatServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ChatServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &chatServiceClient{
		send: connect.NewClient[api.SendChatMessageRequest, api.SendChatMessageResponse](
			httpClient,
			baseURL+ChatServiceSendProcedure,
			opts...,
		),
		getSession: connect.NewClient[api.GetChatSessionRequest, api.GetChatSessionResponse](
			httpClient,
			baseURL+ChatServiceGetSessionProcedure,
			opts...,
		),
		listSessions: connect.NewClient[api.ListChatSessionsRequest, api.ListChatSessionsResponse](
			httpClient,
			baseURL+ChatServiceListSessionsProcedure,
			opts...,
		),
	}
}

type chatServiceClient struct {
	send         *connect.Client[api.SendChatMessageRequest, api.SendChatMessageResponse]
	getSession   *connect.Client[api.GetChatSessionRequest, api.GetChatSessionResponse]
	listSessions *connect.Client[api.ListChatSessionsRequest, api.ListChatSessionsResponse]
}

// Send calls pennyworth.v1.ChatService.Send.
func (c *chatServiceClient) Send(ctx context.Context, req *connect.Request[api.SendChatMessageRequest]) (*connect.ServerStreamForClient[api.SendChatMessageResponse], error) {
	return c.send.CallServerStream(ctx, req)
}

// GetSession calls pennyworth.v1.ChatService.GetSession.
func (c *chatServiceClient) GetSession(ctx context.Context, req *connect.Request[api.GetChatSessionRequest]) (*connect.Response[api.GetChatSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

// ListSessions calls pennyworth.v1.ChatService.ListSessions.
func (c *chatServiceClient) ListSessions(ctx context.Context, req *connect.Request[api.ListChatSessionsRequest]) (*connect.Response[api.ListChatSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

// ChatServiceHandler streams answers from the financial helper chatbot.
type ChatServiceHandler interface {
	Send(context.Context, *connect.Request[api.SendChatMessageRequest], *connect.ServerStream[api.SendChatMessageResponse]) error
	GetSession(context.Context, *connect.Request[api.GetChatSessionRequest]) (*connect.Response[api.GetChatSessionResponse], error)
	ListSessions(context.Context, *connect.Request[api.ListChatSessionsRequest]) (*connect.Response[api.ListChatSessionsResponse], error)
}

// NewChatServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewChatServiceHandler(svc ChatServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	chatServiceSendHandler := connect.NewServerStreamHandler(
		ChatServiceSendProcedure,
		svc.Send,
		opts...,
	)
	chatServiceGetSessionHandler := connect.NewUnaryHandler(
		ChatServiceGetSessionProcedure,
		svc.GetSession,
		opts...,
	)
	chatServiceListSessionsHandler := connect.NewUnaryHandler(
		ChatServiceListSessionsProcedure,
		svc.ListSessions,
		opts...,
	)
	return "/pennyworth.v1.ChatService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ChatServiceSendProcedure:
			chatServiceSendHandler.ServeHTTP(w, r)
		case ChatServiceGetSessionProcedure:
			chatServiceGetSessionHandler.ServeHTTP(w, r)
		case ChatServiceListSessionsProcedure:
			chatServiceListSessionsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AuthServiceClient is a client for the pennyworth.v1.AuthService service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceClient constructs a client for the pennyworth.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register: connect.NewClient[api.RegisterRequest, api.RegisterResponse](
			httpClient,
			baseURL+AuthServiceRegisterProcedure,
			opts...,
		),
		login: connect.NewClient[api.LoginRequest, api.LoginResponse](
			httpClient,
			baseURL+AuthServiceLoginProcedure,
			opts...,
		),
		logout: connect.NewClient[api.LogoutRequest, api.LogoutResponse](
			httpClient,
			baseURL+AuthServiceLogoutProcedure,
			opts...,
		),
		getCurrentUser: connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](
			httpClient,
			baseURL+AuthServiceGetCurrentUserProcedure,
			opts...,
		),
	}
}

type authServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	logout         *connect.Client[api.LogoutRequest, api.LogoutResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
}

// Register calls pennyworth.v1.AuthService.Register.
func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

// Login calls pennyworth.v1.AuthService.Login.
func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// Logout calls pennyworth.v1.AuthService.Logout.
func (c *authServiceClient) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

// GetCurrentUser calls pennyworth.v1.AuthService.GetCurrentUser.
func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// AuthServiceHandler manages accounts and sessions.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	authServiceRegisterHandler := connect.NewUnaryHandler(
		AuthServiceRegisterProcedure,
		svc.Register,
		opts...,
	)
	authServiceLoginHandler := connect.NewUnaryHandler(
		AuthServiceLoginProcedure,
		svc.Login,
		opts...,
	)
	authServiceLogoutHandler := connect.NewUnaryHandler(
		AuthServiceLogoutProcedure,
		svc.Logout,
		opts...,
	)
	authServiceGetCurrentUserHandler := connect.NewUnaryHandler(
		AuthServiceGetCurrentUserProcedure,
		svc.GetCurrentUser,
		opts...,
	)
	return "/pennyworth.v1.AuthService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			authServiceRegisterHandler.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			authServiceLoginHandler.ServeHTTP(w, r)
		case AuthServiceLogoutProcedure:
			authServiceLogoutHandler.ServeHTTP(w, r)
		case AuthServiceGetCurrentUserProcedure:
			authServiceGetCurrentUserHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// HelpServiceClient is a client for the pennyworth.v1.HelpService service.
type HelpServiceClient interface {
	Submit(context.Context, *connect.Request[api.SubmitHelpRequestRequest]) (*connect.Response[api.SubmitHelpRequestResponse], error)
	List(context.Context, *connect.Request[api.ListHelpRequestsRequest]) (*connect.Response[api.ListHelpRequestsResponse], error)
}

// NewHelpServiceClient constructs a client for the pennyworth.v1.HelpService service.
func NewHelpServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) HelpServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &helpServiceClient{
		submit: connect.NewClient[api.SubmitHelpRequestRequest, api.SubmitHelpRequestResponse](
			httpClient,
			baseURL+HelpServiceSubmitProcedure,
			opts...,
		),
		list: connect.NewClient[api.ListHelpRequestsRequest, api.ListHelpRequestsResponse](
			httpClient,
			baseURL+HelpServiceListProcedure,
			opts...,
		),
	}
}

type helpServiceClient struct {
	submit *connect.Client[api.SubmitHelpRequestRequest, api.SubmitHelpRequestResponse]
	list   *connect.Client[api.ListHelpRequestsRequest, api.ListHelpRequestsResponse]
}

// Submit calls pennyworth.v1.HelpService.Submit.
func (c *helpServiceClient) Submit(ctx context.Context, req *connect.Request[api.SubmitHelpRequestRequest]) (*connect.Response[api.SubmitHelpRequestResponse], error) {
	return c.submit.CallUnary(ctx, req)
}

// List calls pennyworth.v1.HelpService.List.
func (c *helpServiceClient) List(ctx context.Context, req *connect.Request[api.ListHelpRequestsRequest]) (*connect.Response[api.ListHelpRequestsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

// HelpServiceHandler collects requests for a human financial assistant.
type HelpServiceHandler interface {
	Submit(context.Context, *connect.Request[api.SubmitHelpRequestRequest]) (*connect.Response[api.SubmitHelpRequestResponse], error)
	List(context.Context, *connect.Request[api.ListHelpRequestsRequest]) (*connect.Response[api.ListHelpRequestsResponse], error)
}

// NewHelpServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewHelpServiceHandler(svc HelpServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	helpServiceSubmitHandler := connect.NewUnaryHandler(
		HelpServiceSubmitProcedure,
		svc.Submit,
		opts...,
	)
	helpServiceListHandler := connect.NewUnaryHandler(
		HelpServiceListProcedure,
		svc.List,
		opts...,
	)
	return "/pennyworth.v1.HelpService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case HelpServiceSubmitProcedure:
			helpServiceSubmitHandler.ServeHTTP(w, r)
		case HelpServiceListProcedure:
			helpServiceListHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
