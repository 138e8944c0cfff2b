package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindhaven/internal/assessment"
	"mindhaven/internal/bank"
	"mindhaven/internal/config"
	"mindhaven/internal/order"
	"mindhaven/internal/unlock"
)

const (
	desktopUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
	mobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	orders := order.NewService(order.NewMemoryStore(), config.PayConfig{Price: "9.90"})
	hub := unlock.NewHub()
	sessions := assessment.NewManager(
		bank.New(), orders, hub,
		"https://mindhaven.example.com", "9.90",
		assessment.WithAdvanceDelay(0), assessment.WithAckDelay(0),
	)
	srv := httptest.NewServer(NewRouter(&Container{
		Sessions:   sessions,
		Orders:     orders,
		Visibility: hub,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, ua string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	return resp.StatusCode, doc
}

func answerAll(t *testing.T, srv *httptest.Server, id string, total int) {
	t.Helper()
	for i := 0; i < total; i++ {
		code, _ := do(t, "POST", srv.URL+"/v1/assessments/"+id+"/answers", "", map[string]int{"score": 0})
		require.Equal(t, http.StatusOK, code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	code, doc := do(t, "GET", srv.URL+"/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", doc["status"])
}

func TestDesktopMinimalRunIsUnlockedOnCompletion(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/assessments", desktopUA, map[string]string{"mode": "minimal"})
	require.Equal(t, http.StatusCreated, code)
	id := doc["sessionId"].(string)
	assert.Equal(t, "in_progress", doc["state"])
	assert.Equal(t, float64(15), doc["total"])

	// Result before completion is rejected.
	code, _ = do(t, "GET", srv.URL+"/v1/assessments/"+id+"/result", "", nil)
	require.Equal(t, http.StatusBadRequest, code)

	answerAll(t, srv, id, 15)

	code, doc = do(t, "GET", srv.URL+"/v1/assessments/"+id+"/result", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, doc["locked"])
	assert.Equal(t, "健康", doc["level"])
	assert.NotEmpty(t, doc["detailedAnalysis"])
	assert.NotEmpty(t, doc["comprehensiveAnalysis"])
}

func TestMobileMinimalShareUnlockFlow(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/assessments", mobileUA, map[string]string{"mode": "minimal"})
	require.Equal(t, http.StatusCreated, code)
	id := doc["sessionId"].(string)

	answerAll(t, srv, id, 15)

	code, doc = do(t, "GET", srv.URL+"/v1/assessments/"+id+"/result", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, doc["locked"])
	assert.Equal(t, "share", doc["unlockMethod"])
	assert.Nil(t, doc["factorScores"])

	// A foreground regain before the copy is a no-op.
	code, _ = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/unlock/visibility", "", nil)
	require.Equal(t, http.StatusOK, code)
	code, doc = do(t, "GET", srv.URL+"/v1/assessments/"+id+"/result", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, doc["locked"])

	code, doc = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/unlock/share/copy", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, doc["shareText"], "https://mindhaven.example.com")

	code, _ = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/unlock/visibility", "", nil)
	require.Equal(t, http.StatusOK, code)

	code, doc = do(t, "GET", srv.URL+"/v1/assessments/"+id+"/result", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, doc["locked"])
	assert.NotEmpty(t, doc["factorScores"])
}

func TestRapidPaymentUnlockFlow(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/assessments", mobileUA, map[string]string{"mode": "rapid"})
	require.Equal(t, http.StatusCreated, code)
	id := doc["sessionId"].(string)
	assert.Equal(t, float64(50), doc["total"])

	answerAll(t, srv, id, 50)

	code, doc = do(t, "GET", srv.URL+"/v1/assessments/"+id+"/result", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, doc["locked"])
	assert.Equal(t, "payment", doc["unlockMethod"])

	// Share unlocking is not available for paid modes.
	code, _ = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/unlock/share/copy", "", nil)
	require.Equal(t, http.StatusBadRequest, code)

	code, doc = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/unlock/pay", "", map[string]string{"channel": "wechat"})
	require.Equal(t, http.StatusOK, code)
	orderID := doc["orderId"].(string)
	assert.Equal(t, true, doc["isMock"])

	code, doc = do(t, "GET", srv.URL+"/v1/pay/status/"+orderID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pending", doc["status"])

	// Back out, pick again, then confirm.
	code, _ = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/unlock/pay/cancel", "", nil)
	require.Equal(t, http.StatusOK, code)
	code, doc = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/unlock/pay", "", map[string]string{"channel": "alipay"})
	require.Equal(t, http.StatusOK, code)
	orderID = doc["orderId"].(string)

	code, _ = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/unlock/pay/confirm", "", nil)
	require.Equal(t, http.StatusOK, code)

	code, doc = do(t, "GET", srv.URL+"/v1/pay/status/"+orderID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "paid", doc["status"])

	code, doc = do(t, "GET", srv.URL+"/v1/assessments/"+id+"/result", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, doc["locked"])
}

func TestResetAndRestartSwitchesMode(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/assessments", desktopUA, map[string]string{"mode": "minimal"})
	require.Equal(t, http.StatusCreated, code)
	id := doc["sessionId"].(string)

	code, doc = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/reset", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "mode_select", doc["state"])

	code, doc = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/start", "", map[string]string{"mode": "full"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(90), doc["total"])
}

func TestBackEndpoint(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/assessments", desktopUA, map[string]string{"mode": "minimal"})
	require.Equal(t, http.StatusCreated, code)
	id := doc["sessionId"].(string)

	code, _ = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/back", "", nil)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/answers", "", map[string]int{"score": 3})
	require.Equal(t, http.StatusOK, code)

	code, doc = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/back", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), doc["position"])
}

func TestUnknownSessionIs404(t *testing.T) {
	srv := newTestServer(t)
	code, _ := do(t, "GET", srv.URL+"/v1/assessments/ghost", "", nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestInvalidModeIs400(t *testing.T) {
	srv := newTestServer(t)
	code, _ := do(t, "POST", srv.URL+"/v1/assessments", desktopUA, map[string]string{"mode": "extended"})
	require.Equal(t, http.StatusBadRequest, code)
}

func TestPayEndpointsRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/pay/create", "", map[string]string{
		"amount": "9.90", "title": "心理解析报告", "channel": "wechat",
	})
	require.Equal(t, http.StatusOK, code)
	orderID := doc["orderId"].(string)

	code, _ = do(t, "POST", srv.URL+"/v1/pay/mock_success", "", map[string]string{"orderId": orderID})
	require.Equal(t, http.StatusOK, code)

	code, doc = do(t, "GET", srv.URL+"/v1/pay/status/"+orderID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "paid", doc["status"])

	code, _ = do(t, "GET", srv.URL+"/v1/pay/status/ORDER_0_GHOST", "", nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestPayCreateAcceptsNumericAmount(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/pay/create", "", map[string]any{
		"amount": 9.90, "title": "心理解析报告", "channel": "wechat",
	})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, doc["orderId"])

	// A missing amount still fails validation, not decoding.
	code, doc = do(t, "POST", srv.URL+"/v1/pay/create", "", map[string]string{
		"title": "心理解析报告", "channel": "wechat",
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, fmt.Sprint(doc["error"]), "amount required")
}

func TestNotifyWebhookAck(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/pay/create", "", map[string]string{
		"amount": "9.90", "title": "心理解析报告", "channel": "alipay",
	})
	require.Equal(t, http.StatusOK, code)
	orderID := doc["orderId"].(string)

	// Mock mode signs with an empty secret; compute the matching digest.
	signer := order.NewMD5Signer("")
	payload := map[string]string{"trade_order_id": orderID, "status": "OD"}
	payload["hash"] = signer.Sign(payload)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	resp, err := http.Post(srv.URL+"/v1/pay/notify", "application/json", &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	code, doc = do(t, "GET", srv.URL+"/v1/pay/status/"+orderID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "paid", doc["status"])

	// Unsigned payloads are rejected.
	code, _ = do(t, "POST", srv.URL+"/v1/pay/notify", "", map[string]string{"trade_order_id": orderID})
	require.Equal(t, http.StatusBadRequest, code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/assessments", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAnswerOutOfRangeIs400(t *testing.T) {
	srv := newTestServer(t)

	code, doc := do(t, "POST", srv.URL+"/v1/assessments", desktopUA, map[string]string{"mode": "minimal"})
	require.Equal(t, http.StatusCreated, code)
	id := doc["sessionId"].(string)

	code, doc = do(t, "POST", srv.URL+"/v1/assessments/"+id+"/answers", "", map[string]int{"score": 7})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, fmt.Sprint(doc["error"]), "not an option")
}
