package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindhaven/internal/apperr"
	"mindhaven/internal/config"
	"mindhaven/internal/model"
)

func newMockService() *Service {
	return NewService(NewMemoryStore(), config.PayConfig{Price: "9.90"})
}

func TestCreateRequiresAmount(t *testing.T) {
	s := newMockService()
	_, err := s.Create(context.Background(), "", "心理解析报告", model.ChannelWechat)
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestMockCreateRegistersPendingOrder(t *testing.T) {
	s := newMockService()
	require.True(t, s.IsMockMode())

	res, err := s.Create(context.Background(), "9.90", "心理解析报告", model.ChannelWechat)
	require.NoError(t, err)

	assert.True(t, res.IsMock)
	assert.True(t, strings.HasPrefix(res.OrderID, "ORDER_"))
	assert.Contains(t, res.PaymentTarget, res.OrderID)

	status, err := s.Status(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, status)
}

func TestStatusUnknownOrderIsNotFound(t *testing.T) {
	s := newMockService()
	_, err := s.Status(context.Background(), "ORDER_0_NOPE")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestForceSuccessIsIdempotent(t *testing.T) {
	s := newMockService()
	res, err := s.Create(context.Background(), "9.90", "心理解析报告", model.ChannelAlipay)
	require.NoError(t, err)

	require.NoError(t, s.ForceSuccess(context.Background(), res.OrderID))
	require.NoError(t, s.ForceSuccess(context.Background(), res.OrderID))

	status, err := s.Status(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPaid, status)
}

func TestForceSuccessUnknownOrderIsNotFound(t *testing.T) {
	s := newMockService()
	err := s.ForceSuccess(context.Background(), "ORDER_0_NOPE")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestNotifyMarksOrderPaid(t *testing.T) {
	s := newMockService()
	res, err := s.Create(context.Background(), "9.90", "心理解析报告", model.ChannelWechat)
	require.NoError(t, err)

	payload := map[string]string{
		"trade_order_id": res.OrderID,
		"status":         "OD",
	}
	payload["hash"] = s.signer.Sign(payload)

	require.NoError(t, s.Notify(context.Background(), payload))
	// Delivered twice; second is a no-op.
	require.NoError(t, s.Notify(context.Background(), payload))

	status, err := s.Status(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPaid, status)
}

func TestNotifyRejectsBadSignature(t *testing.T) {
	s := newMockService()
	res, err := s.Create(context.Background(), "9.90", "心理解析报告", model.ChannelWechat)
	require.NoError(t, err)

	payload := map[string]string{
		"trade_order_id": res.OrderID,
		"status":         "OD",
		"hash":           "forged",
	}
	require.ErrorIs(t, s.Notify(context.Background(), payload), apperr.ErrInvalidInput)

	status, err := s.Status(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, status)
}

func TestNotifyUnknownOrderIsSilentNoOp(t *testing.T) {
	s := newMockService()
	payload := map[string]string{
		"trade_order_id": "ORDER_0_NOPE",
		"status":         "OD",
	}
	payload["hash"] = s.signer.Sign(payload)
	require.NoError(t, s.Notify(context.Background(), payload))
}

func TestRealModeCreateRelaysSignedPayload(t *testing.T) {
	var got map[string]string
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"url": "https://gateway.example.com/qr/123"})
	}))
	defer gw.Close()

	s := NewService(NewMemoryStore(), config.PayConfig{
		AppID:     "2001",
		AppSecret: "topsecret",
		APIURL:    gw.URL,
		NotifyURL: "https://mindhaven.example.com/v1/pay/notify",
		Price:     "9.90",
	})
	require.False(t, s.IsMockMode())

	res, err := s.Create(context.Background(), "9.90", "心理解析报告", model.ChannelWechat)
	require.NoError(t, err)

	assert.False(t, res.IsMock)
	assert.Equal(t, "https://gateway.example.com/qr/123", res.PaymentTarget)

	assert.Equal(t, "2001", got["appid"])
	assert.Equal(t, res.OrderID, got["trade_order_id"])
	assert.True(t, verify(NewMD5Signer("topsecret"), got))

	status, err := s.Status(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, status)
}

func TestRealModeGatewayFailureLeavesOrderPending(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer gw.Close()

	s := NewService(NewMemoryStore(), config.PayConfig{
		AppID:     "2001",
		AppSecret: "topsecret",
		APIURL:    gw.URL,
		Price:     "9.90",
	})

	_, err := s.Create(context.Background(), "9.90", "心理解析报告", model.ChannelWechat)
	require.ErrorIs(t, err, apperr.ErrGateway)
}

func TestMarkPaidRacesResolveToOneTransition(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), &model.Order{
		ID:     "ORDER_1_RACING",
		Status: model.OrderPending,
	}))

	const workers = 16
	var wg sync.WaitGroup
	changes := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			changed, err := store.MarkPaid(context.Background(), "ORDER_1_RACING")
			assert.NoError(t, err)
			changes <- changed
		}()
	}
	wg.Wait()
	close(changes)

	wins := 0
	for c := range changes {
		if c {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestOrderIDShape(t *testing.T) {
	id, err := newOrderID()
	require.NoError(t, err)

	parts := strings.Split(id, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "ORDER", parts[0])
	assert.Len(t, parts[2], orderSuffixLen)
	for _, c := range parts[2] {
		assert.Contains(t, orderSuffixAlphabet, string(c))
	}
}
