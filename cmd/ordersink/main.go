package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/storefront-service/internal/adapter/natsstan"
	"github.com/example/storefront-service/internal/domain"
	"go.uber.org/zap"
)

// ordersink — локальный стенд внешнего сервиса заказов: слушает subject
// отправок и печатает каждый payload.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	sub := &natsstan.Subscriber{
		ClusterID: getenv("STAN_CLUSTER_ID", "storefront-cluster"),
		ClientID:  os.Getenv("STAN_SINK_ID"),
		URL:       getenv("NATS_URL", "nats://localhost:4222"),
		Subject:   getenv("STAN_ORDER_SUBJECT", "orders.submissions"),
		Durable:   getenv("STAN_SINK_DURABLE", "ordersink"),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = sub.Subscribe(ctx, func(_ context.Context, raw []byte) error {
		var s domain.Submission
		if err := json.Unmarshal(raw, &s); err != nil {
			logger.Warn("invalid submission payload", zap.Error(err))
			// битый payload не переотправляем
			return nil
		}
		logger.Info("submission received",
			zap.String("id", s.ID),
			zap.Int("items", len(s.Items)),
			zap.Int64("total", s.Total),
			zap.String("currency", s.Currency),
			zap.String("phone", s.Phone))
		return nil
	})
	if err != nil {
		logger.Fatal("stan subscribe", zap.Error(err))
	}

	<-ctx.Done()
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
