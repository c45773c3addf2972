package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/minseo-dev/customerdesk/internal/model"
	"github.com/minseo-dev/customerdesk/internal/repository"
)

// CustomerInput — входные данные для добавления записи.
// Строки должны приходить уже обрезанными; имя обязательно.
type CustomerInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Memo     string `json:"memo"`
}

// CustomerService реализует операции картотеки поверх репозитория.
type CustomerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Add persists a new record and returns its fresh id.
func (s *CustomerService) Add(ctx context.Context, in CustomerInput) (uint, Result) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, resultInvalid("name is required")
	}

	c := model.Customer{
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		Company:  in.Company,
		Position: in.Position,
		Memo:     in.Memo,
	}
	if err := s.customers.Create(ctx, &c); err != nil {
		return 0, resultStorageErr("failed to add customer", err)
	}
	return c.ID, resultOK(fmt.Sprintf("customer %q added", c.Name))
}

// Get returns a single record by id.
func (s *CustomerService) Get(ctx context.Context, id uint) (*model.Customer, Result) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, resultNotFound(fmt.Sprintf("customer %d not found", id))
		}
		return nil, resultStorageErr("failed to load customer", err)
	}
	return c, resultOK("")
}

// List возвращает все записи по алфавиту имени.
func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	return s.customers.ListAll(ctx)
}

// Search returns records whose name, phone, email or company contains
// the keyword. An empty keyword matches nothing; it never degrades
// into list-all.
func (s *CustomerService) Search(ctx context.Context, keyword string) ([]model.Customer, error) {
	if keyword == "" {
		return []model.Customer{}, nil
	}
	return s.customers.Search(ctx, keyword)
}

// Update applies the patch to the record. An empty patch is a reported
// no-op, not an error; updating everything by default would be a bug.
func (s *CustomerService) Update(ctx context.Context, id uint, patch CustomerPatch) Result {
	if patch.IsEmpty() {
		return resultOK("nothing to update")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return resultInvalid("name must not be empty")
	}

	found, err := s.customers.Update(ctx, id, patch.Changes())
	if err != nil {
		return resultStorageErr("failed to update customer", err)
	}
	if !found {
		return resultNotFound(fmt.Sprintf("customer %d not found", id))
	}
	return resultOK(fmt.Sprintf("customer %d updated", id))
}

// Delete removes the record. Deleting an absent id is a reported
// not-found, never a crash; the call is idempotent.
func (s *CustomerService) Delete(ctx context.Context, id uint) Result {
	found, err := s.customers.Delete(ctx, id)
	if err != nil {
		return resultStorageErr("failed to delete customer", err)
	}
	if !found {
		return resultNotFound(fmt.Sprintf("customer %d not found", id))
	}
	return resultOK(fmt.Sprintf("customer %d deleted", id))
}
