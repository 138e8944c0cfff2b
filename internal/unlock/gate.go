package unlock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mindhaven/internal/apperr"
	"mindhaven/internal/model"
	"mindhaven/internal/order"
)

// GateState is the unlock procedure's position. Share flow moves
// idle → awaitingReturn → completed; payment flow moves
// idle → scanning → completed (scanning may back out to idle).
type GateState string

const (
	GateIdle           GateState = "idle"
	GateAwaitingReturn GateState = "awaiting_return"
	GateScanning       GateState = "scanning"
	GateCompleted      GateState = "completed"
)

const shareMessage = "我刚刚做了一个超准的专业心理体检，免费解锁！你也来测测看？\n%s"

// Gate drives one session's unlock procedure to completion. It consumes
// the order service on the payment path and signals the session's unlock
// exactly once per lifecycle.
type Gate struct {
	mu sync.Mutex

	sessionID string
	policy    ModePolicy
	state     GateState

	orders   *order.Service
	hub      *Hub
	shareURL string
	amount   string
	title    string
	ackDelay time.Duration

	onUnlock  func()
	unlocked  bool
	torn      bool
	cancelVis func()

	orderID string
	channel model.Channel
}

// NewGate builds a gate for one session. onUnlock is invoked at most
// once, when the gate's success condition fires. ackDelay postpones the
// unlock signal after a payment self-attestation so the confirmation can
// be visually acknowledged.
func NewGate(sessionID string, mode model.Mode, orders *order.Service, hub *Hub, shareURL, amount string, ackDelay time.Duration, onUnlock func()) *Gate {
	return &Gate{
		sessionID: sessionID,
		policy:    PolicyFor(mode),
		state:     GateIdle,
		orders:    orders,
		hub:       hub,
		shareURL:  shareURL,
		amount:    amount,
		title:     "心理解析报告",
		ackDelay:  ackDelay,
		onUnlock:  onUnlock,
	}
}

// Method returns the unlock method the policy selects for this gate.
func (g *Gate) Method() Method {
	return g.policy.Method
}

// State returns the gate's current position.
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// OrderID returns the most recently created order id, if any.
func (g *Gate) OrderID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orderID
}

// CopyShare starts the share flow: the user copied the share message and
// is expected to leave for the share target. The visibility subscription
// is acquired here and held only while awaiting the return.
func (g *Gate) CopyShare() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.policy.Method != MethodShare {
		return "", apperr.Invalid("share unlock not available for this mode")
	}
	if g.torn || g.state != GateIdle {
		return "", apperr.Invalid(fmt.Sprintf("cannot start share from state %s", g.state))
	}

	g.state = GateAwaitingReturn
	g.cancelVis = g.hub.Subscribe(g.sessionID, g.visibilityRegained)

	return fmt.Sprintf(shareMessage, g.shareURL), nil
}

// visibilityRegained completes the share flow on the first foreground
// regain observed while awaiting the return.
func (g *Gate) visibilityRegained() {
	g.mu.Lock()
	if g.torn || g.state != GateAwaitingReturn {
		g.mu.Unlock()
		return
	}
	g.state = GateCompleted
	g.releaseVisibility()
	g.mu.Unlock()

	g.fireUnlock()
}

// ChooseChannel starts the payment flow: entering scanning creates a new
// pending order through the order service.
func (g *Gate) ChooseChannel(ctx context.Context, channel model.Channel) (*order.CreateResult, error) {
	if channel != model.ChannelWechat && channel != model.ChannelAlipay {
		return nil, apperr.Invalid(fmt.Sprintf("unknown channel %q", channel))
	}

	g.mu.Lock()
	if g.policy.Method != MethodPayment {
		g.mu.Unlock()
		return nil, apperr.Invalid("payment unlock not available for this mode")
	}
	if g.torn || g.state != GateIdle {
		g.mu.Unlock()
		return nil, apperr.Invalid(fmt.Sprintf("cannot choose channel from state %s", g.state))
	}
	amount, title := g.amount, g.title
	g.mu.Unlock()

	// Order creation may hit the network; never hold the gate lock here.
	res, err := g.orders.Create(ctx, amount, title, channel)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.state = GateScanning
	g.orderID = res.OrderID
	g.channel = channel
	g.mu.Unlock()

	return res, nil
}

// Cancel backs out of scanning to change channel. The already-created
// order is not canceled; it stays pending.
func (g *Gate) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GateScanning {
		return apperr.Invalid(fmt.Sprintf("cannot cancel from state %s", g.state))
	}
	g.state = GateIdle
	return nil
}

// Confirm records the user's self-attestation of payment, forces the
// order to paid and signals the unlock after the acknowledgment delay.
func (g *Gate) Confirm(ctx context.Context) error {
	g.mu.Lock()
	if g.torn || g.state != GateScanning {
		g.mu.Unlock()
		return apperr.Invalid(fmt.Sprintf("cannot confirm from state %s", g.state))
	}
	orderID := g.orderID
	g.mu.Unlock()

	if err := g.orders.ForceSuccess(ctx, orderID); err != nil {
		return err
	}

	g.mu.Lock()
	g.state = GateCompleted
	g.mu.Unlock()

	if g.ackDelay > 0 {
		time.AfterFunc(g.ackDelay, g.fireUnlock)
	} else {
		g.fireUnlock()
	}
	return nil
}

// Teardown releases the visibility subscription and disarms any pending
// unlock. Must be called when the session resets or is discarded, so a
// dangling listener can never fire for an unrelated session.
func (g *Gate) Teardown() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.torn = true
	g.releaseVisibility()
}

// releaseVisibility must be called with the lock held.
func (g *Gate) releaseVisibility() {
	if g.cancelVis != nil {
		g.cancelVis()
		g.cancelVis = nil
	}
}

func (g *Gate) fireUnlock() {
	g.mu.Lock()
	if g.torn || g.unlocked {
		g.mu.Unlock()
		return
	}
	g.unlocked = true
	g.mu.Unlock()

	g.onUnlock()
}
