package service

// Event is pushed to live clients after a change commits.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

const (
	EventStockUpdate     = "stock_update"
	EventPurchaseCreated = "purchase_created"
	EventReorderCreated  = "reorder_created"
	EventSaleCreated     = "sale_created"
	EventBillDeleted     = "bill_deleted"
	EventDataCleared     = "data_cleared"
)

// Publisher fans events out to connected clients. ws.Hub satisfies it.
type Publisher interface {
	Publish(payload interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(interface{}) {}

func orNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// outbox buffers events inside a transaction and flushes them once it commits.
type outbox struct {
	events []Event
}

func (o *outbox) add(e Event) {
	o.events = append(o.events, e)
}

func (o *outbox) flush(p Publisher) {
	for _, e := range o.events {
		p.Publish(e)
	}
	o.events = nil
}
