package tenants

import "time"

// Tenant is a client organisation, a municipal health secretariat.
type Tenant struct {
	ID            string    `json:"id"`
	Nome          string    `json:"nome"`
	CNPJ          string    `json:"cnpj"` // Formatted as 00.000.000/0000-00
	EmailContato  string    `json:"emailContato"`
	Cidade        string    `json:"cidade,omitempty"`
	Estado        string    `json:"estado,omitempty"` // Two-letter state code
	Ativo         bool      `json:"ativo"`
	CriadoEm      time.Time `json:"criadoEm"`
	AtualizadoEm  time.Time `json:"atualizadoEm"`
	CriadoPor     string    `json:"criadoPor,omitempty"`
	AtualizadoPor string    `json:"atualizadoPor,omitempty"`
}

// Secretario is the first administrator created together with a tenant.
type Secretario struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// CreateRequest is the body of POST /tenants.
type CreateRequest struct {
	Nome         string      `json:"nome"`
	CNPJ         string      `json:"cnpj"`
	EmailContato string      `json:"emailContato"`
	Cidade       string      `json:"cidade,omitempty"`
	Estado       string      `json:"estado,omitempty"`
	Secretario   *Secretario `json:"secretario,omitempty"`
}

// CreatedSecretario is the user created alongside a tenant.
type CreatedSecretario struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nome     string `json:"nome"`
	Role     string `json:"role"`
	TenantID string `json:"tenantId"`
}

type CreateResponse struct {
	Tenant     Tenant             `json:"tenant"`
	Secretario *CreatedSecretario `json:"secretario,omitempty"`
}

// UpdateRequest is the body of PUT /tenants/{id}; nil fields are left alone.
type UpdateRequest struct {
	Nome         *string `json:"nome,omitempty"`
	CNPJ         *string `json:"cnpj,omitempty"`
	EmailContato *string `json:"emailContato,omitempty"`
	Cidade       *string `json:"cidade,omitempty"`
	Estado       *string `json:"estado,omitempty"`
	Ativo        *bool   `json:"ativo,omitempty"`
}

// State is a Brazilian federative unit.
type State struct {
	Code string
	Name string
}

// States lists the federative units offered for Estado.
var States = []State{
	{"AC", "Acre"},
	{"AL", "Alagoas"},
	{"AP", "Amapá"},
	{"AM", "Amazonas"},
	{"BA", "Bahia"},
	{"CE", "Ceará"},
	{"DF", "Distrito Federal"},
	{"ES", "Espírito Santo"},
	{"GO", "Goiás"},
	{"MA", "Maranhão"},
	{"MT", "Mato Grosso"},
	{"MS", "Mato Grosso do Sul"},
	{"MG", "Minas Gerais"},
	{"PA", "Pará"},
	{"PB", "Paraíba"},
	{"PR", "Paraná"},
	{"PE", "Pernambuco"},
	{"PI", "Piauí"},
	{"RJ", "Rio de Janeiro"},
	{"RN", "Rio Grande do Norte"},
	{"RS", "Rio Grande do Sul"},
	{"RO", "Rondônia"},
	{"RR", "Roraima"},
	{"SC", "Santa Catarina"},
	{"SP", "São Paulo"},
	{"SE", "Sergipe"},
	{"TO", "Tocantins"},
}
