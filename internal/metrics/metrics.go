package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StoreMetrics — счётчики мутаций корзины и отправок заказов.
type StoreMetrics struct {
	CartMutations *prometheus.CounterVec
	Submissions   *prometheus.CounterVec
}

func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations.",
	}, []string{"op"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "order_submissions_total",
		Help:      "Total number of order submission attempts.",
	}, []string{"status"})

	reg.MustRegister(mutations, submissions)
	return &StoreMetrics{CartMutations: mutations, Submissions: submissions}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
