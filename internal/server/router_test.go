package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"altrion/internal/collateral"
	"altrion/internal/config"
	"altrion/internal/connect"
	"altrion/internal/models"
	"altrion/internal/oauth"
	"altrion/internal/services"
	"altrion/internal/testutil"
	"altrion/internal/validator"
)

const testAPIKey = "pipeline-test-key"

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

type testApp struct {
	Router      *gin.Engine
	Connections services.ConnectionServicer
}

// setupApp wires the real services over an in-memory database. Platform
// connections fail for "chase" and succeed everywhere else.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		Env:              "test",
		FrontendURL:      "http://localhost:5173",
		JWTSecret:        "router-test-secret",
		JWTExpirationDur: 15 * time.Minute,
		PipelineAPIKey:   testAPIKey,
	}
	config.Set(cfg)

	db := testutil.SetupTestDB(t)
	policy := collateral.Policy{MaxLTV: 60, InterestRate: 5.2}
	audit := services.NewAuditService(db)
	connector := connect.ConnectorFunc(func(_ context.Context, platformID string) error {
		if platformID == "chase" {
			return connect.ErrConnectionRefused
		}
		return nil
	})
	connections := services.NewConnectionService(context.Background(), db, connector, time.Second, audit)
	t.Cleanup(connections.Wait)

	router := NewRouter(cfg, Dependencies{
		Users:       services.NewUserService(db),
		Holdings:    services.NewHoldingService(db),
		Collateral:  services.NewCollateralService(db, policy),
		Loans:       services.NewLoanService(db, policy, 12, true),
		Connections: connections,
		Audit:       audit,
		OAuth:       oauth.Registry{},
	})
	return &testApp{Router: router, Connections: connections}
}

func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) pipeline(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pipeline/holdings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

// signup registers a user and returns the access token and user id.
func (app *testApp) signup(t *testing.T, email string) (string, string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":"password123"}`, email)
	rec := app.request(http.MethodPost, "/api/v1/auth/signup", body, "")
	expectStatus(t, rec, http.StatusCreated)
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), user["id"].(string)
}

// syncBitcoin stores 1.5 BTC at 45000 on coinbase and returns the holding id.
func (app *testApp) syncBitcoin(t *testing.T, userID string) string {
	t.Helper()
	rec := app.pipeline(fmt.Sprintf(`{"user_id":%q,"platform":"coinbase","holdings":[
		{"symbol":"BTC","name":"Bitcoin","type":"crypto","amount":1.5,"price":45000,"change_24h":2}]}`, userID))
	expectStatus(t, rec, http.StatusOK)
	holdings := parseJSON(t, rec)["holdings"].([]interface{})
	return holdings[0].(map[string]interface{})["id"].(string)
}

func TestRouter_Health(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodGet, "/api/health", "", "")

	expectStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["status"] != "ok" {
		t.Error("expected status ok")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/loans", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusNoContent)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("unexpected allowed origin %q", got)
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/api/v1/portfolio", "/api/v1/collateral", "/api/v1/loans", "/api/v1/connections", "/api/v1/auth/me"} {
		rec := app.request(http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestRouter_PipelineRequiresAPIKey(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodPost, "/api/v1/pipeline/holdings", `{}`, "")

	expectStatus(t, rec, http.StatusUnauthorized)
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_API_KEY" {
		t.Errorf("expected INVALID_API_KEY, got %v", errObj["code"])
	}
}

func TestRouter_OAuthProviderDisabled(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodGet, "/api/v1/auth/google", "", "")

	expectStatus(t, rec, http.StatusNotFound)
}

func TestLoanFlow_SyncSelectSubmitReview(t *testing.T) {
	app := setupApp(t)
	token, userID := app.signup(t, "borrower@test.com")
	holdingID := app.syncBitcoin(t, userID)

	// Portfolio reflects the sync
	rec := app.request(http.MethodGet, "/api/v1/portfolio", "", token)
	expectStatus(t, rec, http.StatusOK)
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["total_value"] != float64(67500) {
		t.Fatalf("expected total 67500, got %v", summary["total_value"])
	}

	// Submitting with nothing selected fails
	rec = app.request(http.MethodPost, "/api/v1/loans", "", token)
	expectStatus(t, rec, http.StatusBadRequest)

	// Pledge half, then all of it
	rec = app.request(http.MethodPost, "/api/v1/collateral/"+holdingID, "", token)
	expectStatus(t, rec, http.StatusOK)
	rec = app.request(http.MethodPut, "/api/v1/collateral/"+holdingID+"/percentage", `{"percentage":50}`, token)
	expectStatus(t, rec, http.StatusOK)
	eligibility := parseJSON(t, rec)["eligibility"].(map[string]interface{})
	if eligibility["max_loan_amount"] != float64(20250) {
		t.Fatalf("expected max 20250 at half pledge, got %v", eligibility["max_loan_amount"])
	}
	rec = app.request(http.MethodPut, "/api/v1/collateral/"+holdingID+"/amount", `{"amount":99}`, token)
	expectStatus(t, rec, http.StatusOK)

	rec = app.request(http.MethodGet, "/api/v1/collateral/review", "", token)
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["loan_amount"]; got != float64(40500) {
		t.Fatalf("expected review loan amount 40500, got %v", got)
	}

	// Submit
	rec = app.request(http.MethodPost, "/api/v1/loans", `{"term_months":12}`, token)
	expectStatus(t, rec, http.StatusCreated)
	app1 := parseJSON(t, rec)
	id := app1["id"].(string)
	if app1["status"] != "pending" || app1["loan_amount"] != float64(40500) {
		t.Fatalf("unexpected application %v", app1)
	}

	// The selection is cleared after submission
	rec = app.request(http.MethodGet, "/api/v1/collateral", "", token)
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["selected_count"]; got != float64(0) {
		t.Errorf("expected empty selection after submit, got %v", got)
	}

	// List, get, schedule
	rec = app.request(http.MethodGet, "/api/v1/loans?status=pending", "", token)
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["total_items"]; got != float64(1) {
		t.Errorf("expected 1 pending application, got %v", got)
	}

	rec = app.request(http.MethodGet, "/api/v1/loans/"+id, "", token)
	expectStatus(t, rec, http.StatusOK)
	assets := parseJSON(t, rec)["selected_assets"].([]interface{})
	if len(assets) != 1 || assets[0].(map[string]interface{})["symbol"] != "BTC" {
		t.Errorf("unexpected assets %v", assets)
	}

	rec = app.request(http.MethodGet, "/api/v1/loans/"+id+"/schedule", "", token)
	expectStatus(t, rec, http.StatusOK)
	if rows := parseJSON(t, rec)["rows"].([]interface{}); len(rows) != 12 {
		t.Errorf("expected 12 schedule rows, got %d", len(rows))
	}

	// Strict transitions: pending cannot jump to completed
	rec = app.request(http.MethodPatch, "/api/v1/loans/"+id+"/status", `{"status":"completed"}`, token)
	expectStatus(t, rec, http.StatusConflict)

	rec = app.request(http.MethodPatch, "/api/v1/loans/"+id+"/status", `{"status":"approved"}`, token)
	expectStatus(t, rec, http.StatusOK)

	// Approved applications can no longer be cancelled
	rec = app.request(http.MethodDelete, "/api/v1/loans/"+id, "", token)
	expectStatus(t, rec, http.StatusConflict)
}

func TestLoanFlow_OtherUsersCannotSeeApplications(t *testing.T) {
	app := setupApp(t)
	owner, ownerID := app.signup(t, "owner@test.com")
	other, _ := app.signup(t, "other@test.com")
	holdingID := app.syncBitcoin(t, ownerID)

	expectStatus(t, app.request(http.MethodPost, "/api/v1/collateral/"+holdingID, "", owner), http.StatusOK)
	rec := app.request(http.MethodPost, "/api/v1/loans", "", owner)
	expectStatus(t, rec, http.StatusCreated)
	id := parseJSON(t, rec)["id"].(string)

	expectStatus(t, app.request(http.MethodGet, "/api/v1/loans/"+id, "", other), http.StatusNotFound)
	expectStatus(t, app.request(http.MethodDelete, "/api/v1/loans/"+id, "", other), http.StatusNotFound)
	expectStatus(t, app.request(http.MethodPost, "/api/v1/collateral/"+holdingID, "", other), http.StatusNotFound)

	// The owner can still cancel
	expectStatus(t, app.request(http.MethodDelete, "/api/v1/loans/"+id, "", owner), http.StatusOK)
	expectStatus(t, app.request(http.MethodGet, "/api/v1/loans/"+id, "", owner), http.StatusNotFound)
}

func TestConnectionFlow_ConnectAndRetry(t *testing.T) {
	app := setupApp(t)
	token, _ := app.signup(t, "linker@test.com")

	rec := app.request(http.MethodPost, "/api/v1/connections", `{"platform_ids":["coinbase","chase"]}`, token)
	expectStatus(t, rec, http.StatusAccepted)
	app.Connections.Wait()

	rec = app.request(http.MethodGet, "/api/v1/connections", "", token)
	expectStatus(t, rec, http.StatusOK)
	state := parseJSON(t, rec)
	if state["all_complete"] != true || state["success_count"] != float64(1) {
		t.Fatalf("unexpected state %v", state)
	}

	// Only the failed attempt may be retried
	expectStatus(t, app.request(http.MethodPost, "/api/v1/connections/0/retry", "", token), http.StatusConflict)
	expectStatus(t, app.request(http.MethodPost, "/api/v1/connections/1/retry", "", token), http.StatusAccepted)
	app.Connections.Wait()

	rec = app.request(http.MethodGet, "/api/v1/connections/linked", "", token)
	expectStatus(t, rec, http.StatusOK)
	linked := parseJSON(t, rec)["connections"].([]interface{})
	if len(linked) != 2 {
		t.Fatalf("expected 2 persisted connections, got %d", len(linked))
	}
	chase := linked[0].(map[string]interface{})
	if chase["platform_id"] != "chase" || chase["status"] != string(connect.StatusError) || chase["attempts"] != float64(2) {
		t.Errorf("unexpected chase record %v", chase)
	}
}

func TestAuthFlow_SignupSigninRefreshLogout(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "auth@test.com")

	rec := app.request(http.MethodPost, "/api/v1/auth/signin", `{"email":"auth@test.com","password":"password123"}`, "")
	expectStatus(t, rec, http.StatusOK)
	tokens := parseJSON(t, rec)
	access := tokens["access_token"].(string)
	refresh := tokens["refresh_token"].(string)

	rec = app.request(http.MethodGet, "/api/v1/auth/me", "", access)
	expectStatus(t, rec, http.StatusOK)
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["provider"] != string(models.AuthProviderLocal) {
		t.Errorf("expected local provider, got %v", user["provider"])
	}

	rec = app.request(http.MethodPost, "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	expectStatus(t, rec, http.StatusOK)
	rotated := parseJSON(t, rec)
	next := rotated["access_token"].(string)
	nextRefresh := rotated["refresh_token"].(string)

	// The rotated-out refresh token is rejected
	rec = app.request(http.MethodPost, "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	expectStatus(t, rec, http.StatusUnauthorized)

	expectStatus(t, app.request(http.MethodPost, "/api/v1/auth/logout", "", next), http.StatusOK)

	// A logged-out refresh token no longer works
	rec = app.request(http.MethodPost, "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, nextRefresh), "")
	expectStatus(t, rec, http.StatusUnauthorized)
}
