// Package lancamentos reads the ledger of federal health fund transfers
// received by each tenant. The ledger is read-only.
package lancamentos

import "time"

// Lancamento is one ledger entry.
type Lancamento struct {
	ID       string  `json:"id"`
	TenantID *string `json:"tenantId"`
	CNPJ     string  `json:"cnpj"` // Digits only

	// Process
	NuProcesso string `json:"nuProcesso,omitempty"`
	NuPortaria string `json:"nuPortaria,omitempty"`
	DtPortaria string `json:"dtPortaria,omitempty"`

	// Period
	Ano           int    `json:"ano"`
	Mes           int    `json:"mes"`
	NuCompetencia string `json:"nuCompetencia,omitempty"`
	DiaPagamento  *int   `json:"diaPagamento,omitempty"`

	// Transfer
	TpRepasse            string `json:"tpRepasse"`
	NuOb                 string `json:"nuOb,omitempty"`
	CoTipoRecurso        string `json:"coTipoRecurso,omitempty"`
	TpRecursoProp        string `json:"tpRecursoProp,omitempty"`
	RecursoCOVIDOuNormal string `json:"recursoCOVIDOUNormal,omitempty"`

	// Location
	UF              string `json:"uf"`
	CoMunicipioIBGE string `json:"coMunicipioIbge"`
	Municipio       string `json:"municipio"`

	Entidade string `json:"entidade,omitempty"`

	// Classification
	Bloco      string `json:"bloco,omitempty"`
	Componente string `json:"componente,omitempty"`
	Programa   string `json:"programa,omitempty"`
	NuProposta string `json:"nuProposta,omitempty"`

	// Bank account
	Banco   string `json:"banco,omitempty"`
	Agencia string `json:"agencia,omitempty"`
	Conta   string `json:"conta,omitempty"`

	ValorBruto   float64 `json:"valorBruto"`
	Desconto     float64 `json:"desconto"`
	ValorLiquido float64 `json:"valorLiquido"`

	DtSaldoConta string   `json:"dtSaldoConta,omitempty"`
	VlSaldoConta *float64 `json:"vlSaldoConta,omitempty"`

	MarcadorEmendaCOVID string `json:"marcadorEmendaCOVID,omitempty"`

	CriadoEm      time.Time `json:"criadoEm"`
	CriadoPor     string    `json:"criadoPor,omitempty"`
	AtualizadoEm  time.Time `json:"atualizadoEm"`
	AtualizadoPor string    `json:"atualizadoPor,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of List results.
type Page struct {
	Data       []Lancamento `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

type Period struct {
	Ano int `json:"ano"`
	Mes int `json:"mes"`
}

type TipoRepasseTotal struct {
	Tipo  string `json:"tipo"`
	Total int    `json:"total"`
}

type ContaBancariaTotal struct {
	Banco   string `json:"banco"`
	Agencia string `json:"agencia"`
	Conta   string `json:"conta"`
	Total   int    `json:"total"`
}

// Stats aggregates the entries matching a filter set.
type Stats struct {
	TotalLancamentos   int                  `json:"totalLancamentos"`
	ValorTotalBruto    float64              `json:"valorTotalBruto"`
	ValorTotalLiquido  float64              `json:"valorTotalLiquido"`
	PeriodoMaisRecente Period               `json:"periodoMaisRecente"`
	Anos               []int                `json:"anos"`
	TiposRepasse       []TipoRepasseTotal   `json:"tiposRepasse"`
	ContasBancarias    []ContaBancariaTotal `json:"contasBancarias"`
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the Portuguese name of month m (1..12), or "" when out of
// range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}
