package tenants

// Repo stores tenants for the fake API.
type Repo interface {
	Upsert(tenant *Tenant) error
	Delete(tenantID string) error
	Get(tenantID string) (*Tenant, error)
	GetByCNPJ(cnpj string) (*Tenant, error)
	List() ([]*Tenant, error)
}
