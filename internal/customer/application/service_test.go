package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/ecommerce/internal/customer/domain"
	"github.com/wyfcoding/ecommerce/pkg/idgen"
)

type memoryCustomerRepo struct {
	byID    map[string]*domain.Customer
	byEmail map[string]*domain.Customer
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{
		byID:    make(map[string]*domain.Customer),
		byEmail: make(map[string]*domain.Customer),
	}
}

func (r *memoryCustomerRepo) Get(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (r *memoryCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (r *memoryCustomerRepo) List(_ context.Context, role domain.Role, limit, offset int) ([]*domain.Customer, int64, error) {
	var out []*domain.Customer
	for _, c := range r.byID {
		if role == "" || c.Role == role {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryCustomerRepo) Save(_ context.Context, c *domain.Customer) error {
	r.byID[c.CustomerID] = c
	r.byEmail[c.Email] = c
	return nil
}

func (r *memoryCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	r.byID[c.CustomerID] = c
	return nil
}

func newTestService(t *testing.T) (*CustomerService, *memoryCustomerRepo) {
	t.Helper()
	repo := newMemoryCustomerRepo()
	return NewCustomerService(repo, idgen.NewSnowflake(1)), repo
}

func TestRegisterAssignsIDAndDefaultRole(t *testing.T) {
	svc, _ := newTestService(t)

	c, err := svc.Register(context.Background(), RegisterCustomerCommand{
		Name:  "Asha Rao",
		Email: "asha@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.CustomerID)
	assert.Equal(t, domain.RoleCustomer, c.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterCustomerCommand{Name: "A", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterCustomerCommand{Name: "B", Email: "dup@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterCustomerCommand{
		Name:  "A",
		Email: "a@example.com",
		Role:  "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestListCustomersRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.ListCustomers(context.Background(), "supplier", 20, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestUpdateProfileKeepsEmailAndRole(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Register(context.Background(), RegisterCustomerCommand{
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Role:  "admin",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileCommand{
		CustomerID: created.CustomerID,
		Name:       "Asha R",
		City:       "Bengaluru",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", updated.Name)
	assert.Equal(t, "asha@example.com", updated.Email)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}
