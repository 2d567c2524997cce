package usecase

import (
	"context"

	"github.com/example/storefront-service/internal/domain"
	"github.com/example/storefront-service/internal/store"
	"go.uber.org/zap"
)

// LoadCatalog — загрузить снапшот каталога из внешнего источника при старте.
// Частичный или пустой результат не считается фатальным: ядро работает
// с тем, что удалось получить.
type LoadCatalog struct {
	Source domain.CatalogSource
	Cache  domain.CatalogCache
	Limit  int
	Log    *zap.Logger
}

func (uc LoadCatalog) Execute(ctx context.Context) error {
	limit := uc.Limit
	if limit <= 0 {
		limit = 100
	}
	var products []domain.Product
	for page := 1; ; page++ {
		cp, err := uc.Source.ListProducts(ctx, page, limit)
		if err != nil {
			return err
		}
		products = append(products, cp.Products...)
		if page >= cp.Pagination.TotalPages || len(cp.Products) == 0 {
			break
		}
	}
	categories, err := uc.Source.ListCategories(ctx)
	if err != nil {
		// категории не критичны для корзины; работаем без них
		uc.Log.Warn("categories unavailable", zap.Error(err))
		categories = nil
	}
	uc.Cache.Replace(products, categories)
	uc.Log.Info("catalog loaded",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)))
	return nil
}

// AddToCart — положить товар в корзину по идентификатору из каталога.
type AddToCart struct {
	Catalog domain.CatalogCache
	Cart    *store.CartStore
	Haptics domain.HapticBridge
}

func (uc AddToCart) Execute(productID int64) (domain.CartSnapshot, error) {
	p, ok := uc.Catalog.Product(productID)
	if !ok {
		return uc.Cart.Snapshot(), domain.ErrNotFound
	}
	snap := uc.Cart.AddItem(p)
	uc.Haptics.Notify(domain.NotifySuccess)
	return snap, nil
}

// ChangeQuantity — установить количество позиции корзины.
type ChangeQuantity struct {
	Cart    *store.CartStore
	Haptics domain.HapticBridge
}

func (uc ChangeQuantity) Execute(productID int64, quantity int) domain.CartSnapshot {
	snap := uc.Cart.ChangeQuantity(productID, quantity)
	uc.Haptics.Impact(domain.HapticLight)
	return snap
}

// RemoveFromCart — убрать позицию из корзины.
type RemoveFromCart struct {
	Cart    *store.CartStore
	Haptics domain.HapticBridge
}

func (uc RemoveFromCart) Execute(productID int64) domain.CartSnapshot {
	snap := uc.Cart.RemoveItem(productID)
	uc.Haptics.Impact(domain.HapticMedium)
	return snap
}

// ApplyFilter — заменить выбор категории и строку поиска.
type ApplyFilter struct {
	Filter  *store.CatalogFilter
	Haptics domain.HapticBridge
}

func (uc ApplyFilter) Execute(sel domain.CategorySelection, search string) {
	prev, _ := uc.Filter.State()
	uc.Filter.SetCategory(sel)
	uc.Filter.SetSearchText(search)
	if prev != sel {
		uc.Haptics.Selection()
	}
}

// BrowseCatalog — видимый набор товаров текущей сессии.
type BrowseCatalog struct {
	Catalog domain.CatalogCache
	Filter  *store.CatalogFilter
}

func (uc BrowseCatalog) Execute() []domain.Product {
	return uc.Filter.VisibleProducts(uc.Catalog.Products())
}

// SubmitOrder — проверить черновик, собрать payload и передать его внешнему
// сервису заказов. Корзину не очищает: сброс после успеха — явное действие
// вызывающей стороны.
type SubmitOrder struct {
	Submitter domain.OrderSubmitter
	Haptics   domain.HapticBridge
}

func (uc SubmitOrder) Execute(ctx context.Context, draft domain.OrderDraft, snap domain.CartSnapshot) (domain.Submission, error) {
	sub, err := domain.BuildSubmission(draft, snap)
	if err != nil {
		uc.Haptics.Notify(domain.NotifyWarning)
		return domain.Submission{}, err
	}
	if err := uc.Submitter.Submit(ctx, sub); err != nil {
		uc.Haptics.Notify(domain.NotifyWarning)
		return domain.Submission{}, err
	}
	uc.Haptics.Notify(domain.NotifySuccess)
	return sub, nil
}
