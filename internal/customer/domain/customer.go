// Package domain 客户档案的领域模型
package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Role 账号角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

var (
	// ErrCustomerNotFound 客户不存在
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrEmailTaken 邮箱已被占用
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnknownRole 无法识别的角色
	ErrUnknownRole = errors.New("unknown role")
)

// Customer 客户档案
type Customer struct {
	gorm.Model
	CustomerID string `gorm:"column:customer_id;type:varchar(32);uniqueIndex;not null" json:"customer_id"`
	Name       string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email      string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Role       Role   `gorm:"column:role;type:varchar(20);not null;default:'customer'" json:"role"`
	Address    string `gorm:"column:address;type:varchar(512)" json:"address"`
	City       string `gorm:"column:city;type:varchar(100)" json:"city"`
	State      string `gorm:"column:state;type:varchar(100)" json:"state"`
	Pincode    string `gorm:"column:pincode;type:varchar(10)" json:"pincode"`
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}

// CustomerRepository 客户仓储
type CustomerRepository interface {
	// Get 按业务 ID 查询，不存在返回 ErrCustomerNotFound
	Get(ctx context.Context, customerID string) (*Customer, error)
	// GetByEmail 按邮箱查询
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	// List 按角色分页查询，role 为空时返回全部
	List(ctx context.Context, role Role, limit, offset int) ([]*Customer, int64, error)
	// Save 新增客户
	Save(ctx context.Context, customer *Customer) error
	// Update 更新客户
	Update(ctx context.Context, customer *Customer) error
}
