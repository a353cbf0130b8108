package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

const (
	SubjectAccountRegistered = "account.registered"
	SubjectAccountVerified   = "account.verified"
	SubjectProductCreated    = "product.created"
)

// Event is a domain event that knows its own subject.
type Event interface {
	Subject() string
}

type AccountRegistered struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (AccountRegistered) Subject() string { return SubjectAccountRegistered }

type AccountVerified struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (AccountVerified) Subject() string { return SubjectAccountVerified }

type ProductCreated struct {
	ProductID string `json:"product_id"`
	VendorID  string `json:"vendor_id"`
	Name      string `json:"name"`
}

func (ProductCreated) Subject() string { return SubjectProductCreated }

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("product-store"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(event.Subject(), payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
