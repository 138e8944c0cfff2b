package model

import "time"

// OrderStatus transitions pending → paid only; paid is terminal.
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
)

// Channel selects the payment rail shown to the user.
type Channel string

const (
	ChannelWechat Channel = "wechat"
	ChannelAlipay Channel = "alipay"
)

// Order is a payment attempt. Orders are never deleted during the
// process lifetime; an abandoned order simply stays pending.
type Order struct {
	ID        string      `json:"orderId"`
	Status    OrderStatus `json:"status"`
	Amount    string      `json:"amount"`
	Title     string      `json:"title"`
	Channel   Channel     `json:"channel"`
	CreatedAt time.Time   `json:"createdAt"`
}
