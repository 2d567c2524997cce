package natsstan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/storefront-service/internal/domain"
	stan "github.com/nats-io/stan.go"
)

// Publisher — передача payload заказа внешнему сервису через NATS Streaming.
// Без повторов: ошибка публикации возвращается вызывающей стороне как есть.
type Publisher struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string

	sc stan.Conn
}

func (p *Publisher) Connect() error {
	clientID := p.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("storefront-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(p.ClusterID, clientID, stan.NatsURL(p.URL))
	if err != nil {
		return err
	}
	p.sc = sc
	return nil
}

func (p *Publisher) Submit(_ context.Context, s domain.Submission) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return p.sc.Publish(p.Subject, b)
}

func (p *Publisher) Close() {
	if p.sc != nil {
		p.sc.Close()
	}
}

var _ domain.OrderSubmitter = (*Publisher)(nil)
