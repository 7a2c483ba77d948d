package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/client"
	"github.com/MrJamesThe3rd/facturaas/internal/client/csvimport"
	apiHttp "github.com/MrJamesThe3rd/facturaas/internal/http"
	authHandler "github.com/MrJamesThe3rd/facturaas/internal/http/auth"
	clientHandler "github.com/MrJamesThe3rd/facturaas/internal/http/client"
	invoiceHandler "github.com/MrJamesThe3rd/facturaas/internal/http/invoice"
	paymentTermHandler "github.com/MrJamesThe3rd/facturaas/internal/http/paymentterm"
	taxRateHandler "github.com/MrJamesThe3rd/facturaas/internal/http/taxrate"
	userHandler "github.com/MrJamesThe3rd/facturaas/internal/http/user"
	"github.com/MrJamesThe3rd/facturaas/internal/invoice"
	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)

	users := user.NewService(user.NewMockRepository(ctrl))
	tokens := auth.NewTokens("test-secret", time.Hour)

	return apiHttp.New(apiHttp.Handlers{
		Auth:         authHandler.NewHandler(users, tokens),
		Users:        userHandler.NewHandler(users),
		TaxRates:     taxRateHandler.NewHandler(taxrate.NewService(taxrate.NewMockRepository(ctrl))),
		PaymentTerms: paymentTermHandler.NewHandler(paymentterm.NewService(paymentterm.NewMockRepository(ctrl))),
		Clients:      clientHandler.NewHandler(client.NewService(client.NewMockRepository(ctrl)), csvimport.New(), 1<<20),
		Invoices:     invoiceHandler.NewHandler(invoice.NewService(invoice.NewMockRepository(ctrl))),
	}, authHandler.Middleware(tokens, users), []string{"https://app.example"})
}

func TestRouter(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		target     string
		headers    map[string]string
		wantStatus int
	}

	tests := []testCase{
		{name: "Health", method: http.MethodGet, target: "/health", wantStatus: http.StatusOK},
		{name: "ClientsNeedToken", method: http.MethodGet, target: "/api/v1/clients", wantStatus: http.StatusUnauthorized},
		{name: "InvoicesNeedToken", method: http.MethodGet, target: "/api/v1/invoices", wantStatus: http.StatusUnauthorized},
		{name: "PaymentsNeedToken", method: http.MethodGet, target: "/api/v1/payments", wantStatus: http.StatusUnauthorized},
		{name: "UsersNeedToken", method: http.MethodGet, target: "/api/v1/users", wantStatus: http.StatusUnauthorized},
		{name: "ActiveTaxRatesNeedToken", method: http.MethodGet, target: "/api/v1/tax-rates/active", wantStatus: http.StatusUnauthorized},
		{name: "UnknownRoute", method: http.MethodGet, target: "/api/v1/nothing", wantStatus: http.StatusNotFound},
		{
			name:   "Preflight",
			method: http.MethodOptions,
			target: "/api/v1/clients",
			headers: map[string]string{
				"Origin":                        "https://app.example",
				"Access-Control-Request-Method": "GET",
			},
			wantStatus: http.StatusOK,
		},
	}

	router := newRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.headers["Origin"] != "" {
				assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
