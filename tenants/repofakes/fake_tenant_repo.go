package tenantrepofakes

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/safisaude-console/cnpj"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

// FakeTenantRepo keeps tenants in memory, unique by CNPJ digits.
type FakeTenantRepo struct {
	tenants map[string]*tenants.Tenant
	lock    sync.RWMutex
}

func NewFakeTenantRepo() *FakeTenantRepo {
	return &FakeTenantRepo{
		tenants: make(map[string]*tenants.Tenant),
	}
}

func (tr *FakeTenantRepo) Upsert(tenantData *tenants.Tenant) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tenantData.ID == "" {
		tenantData.ID = uuid.New().String()
	}
	digits := cnpj.Strip(tenantData.CNPJ)
	for id, t := range tr.tenants {
		if id != tenantData.ID && cnpj.Strip(t.CNPJ) == digits {
			return errors.Wrapf(errors.ErrConflict, "cnpj %s", tenantData.CNPJ)
		}
	}
	stored := *tenantData
	tr.tenants[tenantData.ID] = &stored
	return nil
}

func (tr *FakeTenantRepo) Delete(tenantID string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if _, ok := tr.tenants[tenantID]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "tenant %s", tenantID)
	}
	delete(tr.tenants, tenantID)
	return nil
}

func (tr *FakeTenantRepo) Get(tenantID string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	t, ok := tr.tenants[tenantID]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "tenant %s", tenantID)
	}
	c := *t
	return &c, nil
}

func (tr *FakeTenantRepo) GetByCNPJ(value string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	digits := cnpj.Strip(value)
	for _, t := range tr.tenants {
		if cnpj.Strip(t.CNPJ) == digits {
			c := *t
			return &c, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "tenant cnpj %s", value)
}

func (tr *FakeTenantRepo) List() ([]*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	list := make([]*tenants.Tenant, 0, len(tr.tenants))
	for _, t := range tr.tenants {
		c := *t
		list = append(list, &c)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Nome < list[j].Nome
	})
	return list, nil
}
