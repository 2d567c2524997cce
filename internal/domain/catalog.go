package domain

import "time"

// Category — справочная категория каталога.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	IsActive bool   `json:"is_active"`
}

// ProductImage — изображение товара; главное помечено is_main.
type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	FilePath  string `json:"file_path"`
	IsMain    bool   `json:"is_main"`
}

// Product — товар каталога. Ядро его никогда не изменяет.
type Product struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          int64          `json:"price"`
	Currency       string         `json:"currency"`
	Category       *Category      `json:"category,omitempty"`
	Images         []ProductImage `json:"images,omitempty"`
	IsActive       bool           `json:"is_active"`
	TelegramUserID int64          `json:"telegram_user_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// MainImage — первое изображение с is_main, иначе первое по порядку.
func (p Product) MainImage() (ProductImage, bool) {
	for _, img := range p.Images {
		if img.IsMain {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return ProductImage{}, false
}

// CategorySelection — выбранная категория: все или конкретная.
// Явный вариант вместо зарезервированного id, чтобы реальная категория
// не могла совпасть с сентинелом.
type CategorySelection struct {
	all bool
	id  int64
}

func AllCategories() CategorySelection { return CategorySelection{all: true} }

func OneCategory(id int64) CategorySelection { return CategorySelection{id: id} }

func (s CategorySelection) IsAll() bool { return s.all }

// ID возвращает id категории; второй результат false для варианта "все".
func (s CategorySelection) ID() (int64, bool) { return s.id, !s.all }

func (s CategorySelection) Matches(p Product) bool {
	if s.all {
		return true
	}
	return p.Category != nil && p.Category.ID == s.id
}

// Pagination — блок пагинации ответа источника каталога.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// CatalogPage — страница листинга товаров.
type CatalogPage struct {
	Products   []Product
	Pagination Pagination
}
