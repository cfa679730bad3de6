// Package application 客户档案应用服务
package application

import (
	"context"
	"errors"

	"github.com/wyfcoding/ecommerce/internal/customer/domain"
	"github.com/wyfcoding/ecommerce/pkg/idgen"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

// CustomerService 客户档案应用服务
type CustomerService struct {
	repo domain.CustomerRepository
	ids  *idgen.Snowflake
}

// NewCustomerService 创建客户档案应用服务
func NewCustomerService(repo domain.CustomerRepository, ids *idgen.Snowflake) *CustomerService {
	return &CustomerService{repo: repo, ids: ids}
}

// RegisterCustomerCommand 注册客户命令
type RegisterCustomerCommand struct {
	Name    string
	Email   string
	Phone   string
	Role    string
	Address string
	City    string
	State   string
	Pincode string
}

// Register 注册客户，邮箱全局唯一
func (s *CustomerService) Register(ctx context.Context, cmd RegisterCustomerCommand) (*domain.Customer, error) {
	role := domain.Role(cmd.Role)
	if cmd.Role == "" {
		role = domain.RoleCustomer
	}
	if !role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	existing, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil && !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	customer := &domain.Customer{
		CustomerID: s.ids.GenerateString("CUS"),
		Name:       cmd.Name,
		Email:      cmd.Email,
		Phone:      cmd.Phone,
		Role:       role,
		Address:    cmd.Address,
		City:       cmd.City,
		State:      cmd.State,
		Pincode:    cmd.Pincode,
	}

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Customer registered", "customer_id", customer.CustomerID, "role", customer.Role)
	return customer, nil
}

// GetCustomer 查询客户档案
func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.repo.Get(ctx, customerID)
}

// ListCustomers 按角色分页查询
func (s *CustomerService) ListCustomers(ctx context.Context, role string, limit, offset int) ([]*domain.Customer, int64, error) {
	r := domain.Role(role)
	if role != "" && !r.Valid() {
		return nil, 0, domain.ErrUnknownRole
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, r, limit, offset)
}

// UpdateProfileCommand 更新档案命令
type UpdateProfileCommand struct {
	CustomerID string
	Name       string
	Phone      string
	Address    string
	City       string
	State      string
	Pincode    string
}

// UpdateProfile 更新客户档案，邮箱与角色不在此入口修改
func (s *CustomerService) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (*domain.Customer, error) {
	customer, err := s.repo.Get(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	customer.Name = cmd.Name
	customer.Phone = cmd.Phone
	customer.Address = cmd.Address
	customer.City = cmd.City
	customer.State = cmd.State
	customer.Pincode = cmd.Pincode

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
