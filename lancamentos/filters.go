package lancamentos

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/safisaude-console/cnpj"
)

// SortOrder is ASC or DESC.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Filters narrows List and Stats. Zero values are not sent.
type Filters struct {
	Ano       int       `json:"ano,omitempty"`
	Mes       int       `json:"mes,omitempty"`
	TpRepasse string    `json:"tpRepasse,omitempty"`
	Banco     string    `json:"banco,omitempty"`
	Agencia   string    `json:"agencia,omitempty"`
	Conta     string    `json:"conta,omitempty"`
	Search    string    `json:"search,omitempty"`
	CNPJ      string    `json:"cnpj,omitempty"`      // Exact match, any punctuation
	Municipio string    `json:"municipio,omitempty"` // Partial match
	UF        string    `json:"uf,omitempty"`
	Page      int       `json:"page,omitempty"`
	Limit     int       `json:"limit,omitempty"`
	SortBy    string    `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`
}

// Query builds the List query string. The CNPJ is reduced to digits and only
// sent when exactly 14 remain; UF is upper-cased.
func (f Filters) Query() url.Values {
	q := f.StatsQuery()
	setInt(q, "page", f.Page)
	setInt(q, "limit", f.Limit)
	setString(q, "sortBy", f.SortBy)
	setString(q, "sortOrder", string(f.SortOrder))
	return q
}

// StatsQuery is Query without pagination and sorting.
func (f Filters) StatsQuery() url.Values {
	q := url.Values{}
	setInt(q, "ano", f.Ano)
	setInt(q, "mes", f.Mes)
	setString(q, "tpRepasse", f.TpRepasse)
	setString(q, "banco", f.Banco)
	setString(q, "agencia", f.Agencia)
	setString(q, "conta", f.Conta)
	setString(q, "search", f.Search)
	if digits, ok := cnpj.Normalize(f.CNPJ); ok {
		q.Set("cnpj", digits)
	}
	setString(q, "municipio", f.Municipio)
	setString(q, "uf", strings.ToUpper(f.UF))
	return q
}

// ParseFilters reads filters from a query string, the inverse of Query.
// Malformed numbers are ignored.
func ParseFilters(q url.Values) Filters {
	atoi := func(key string) int {
		n, err := strconv.Atoi(q.Get(key))
		if err != nil {
			return 0
		}
		return n
	}
	return Filters{
		Ano:       atoi("ano"),
		Mes:       atoi("mes"),
		TpRepasse: q.Get("tpRepasse"),
		Banco:     q.Get("banco"),
		Agencia:   q.Get("agencia"),
		Conta:     q.Get("conta"),
		Search:    q.Get("search"),
		CNPJ:      q.Get("cnpj"),
		Municipio: q.Get("municipio"),
		UF:        q.Get("uf"),
		Page:      atoi("page"),
		Limit:     atoi("limit"),
		SortBy:    q.Get("sortBy"),
		SortOrder: SortOrder(strings.ToUpper(q.Get("sortOrder"))),
	}
}

func setInt(q url.Values, key string, v int) {
	if v != 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}
