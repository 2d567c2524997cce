package telegram

import (
	"github.com/example/storefront-service/internal/domain"
	"go.uber.org/zap"
)

// LogBridge — стенд моста хост-платформы. Настоящая тактильная обратная
// связь живёт в Telegram WebApp на клиенте; на сервере хуки только
// протоколируются. Fire-and-forget: результат мутаций от них не зависит.
type LogBridge struct {
	Log *zap.Logger
}

func NewLogBridge(log *zap.Logger) *LogBridge {
	return &LogBridge{Log: log}
}

func (b *LogBridge) Selection() {
	b.Log.Debug("haptic selection")
}

func (b *LogBridge) Impact(style string) {
	b.Log.Debug("haptic impact", zap.String("style", style))
}

func (b *LogBridge) Notify(kind string) {
	b.Log.Debug("haptic notification", zap.String("kind", kind))
}

var _ domain.HapticBridge = (*LogBridge)(nil)

// NopBridge — мост без эффектов, для тестов и окружений без хоста.
type NopBridge struct{}

func (NopBridge) Selection()    {}
func (NopBridge) Impact(string) {}
func (NopBridge) Notify(string) {}

var _ domain.HapticBridge = NopBridge{}
