package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/minseo-dev/customerdesk/internal/model"
)

type CustomerRepository interface {
	// Создать запись; ID и CreatedAt проставляет хранилище.
	Create(ctx context.Context, customer *model.Customer) error
	// Найти запись по ID.
	GetByID(ctx context.Context, id uint) (*model.Customer, error)
	// Все записи по алфавиту имени.
	ListAll(ctx context.Context) ([]model.Customer, error)
	// Подстрочный поиск по имени/телефону/почте/компании (OR).
	Search(ctx context.Context, keyword string) ([]model.Customer, error)
	// Частичное обновление; false — записи нет.
	Update(ctx context.Context, id uint, changes map[string]any) (bool, error)
	// Удалить запись; false — записи нет.
	Delete(ctx context.Context, id uint) (bool, error)
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *GormCustomerRepository) GetByID(ctx context.Context, id uint) (*model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	if err := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Order("name ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormCustomerRepository) Search(ctx context.Context, keyword string) ([]model.Customer, error) {
	pattern := "%" + keyword + "%"

	customers := []model.Customer{}
	if err := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("name LIKE ? OR phone LIKE ? OR email LIKE ? OR company LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("name ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormCustomerRepository) Update(ctx context.Context, id uint, changes map[string]any) (bool, error) {
	// Существование проверяем отдельно: Updates по несуществующему ID
	// молча затронет 0 строк, а нам нужен явный not-found.
	var c model.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(changes).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormCustomerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Customer{}, "id = ?", id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
