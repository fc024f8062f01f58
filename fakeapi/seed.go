package fakeapi

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/safisaude-console/cnpj"
	"github.com/jrsteele09/safisaude-console/lancamentos"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/tenants"
	"github.com/jrsteele09/safisaude-console/users"
)

// SeedPassword is the password of every seeded user.
const SeedPassword = "safisaude123"

// Seeded accounts, one per role.
const (
	SeedSuperAdmin      = "admin@safisaude.com.br"
	SeedSuporteAdmin    = "suporte@safisaude.com.br"
	SeedFinanceiroAdmin = "financeiro.admin@safisaude.com.br"
	SeedSecretario      = "secretario@saude.campinas.sp.gov.br"
	SeedFinanceiro      = "financeiro@saude.campinas.sp.gov.br"
	SeedVisualizador    = "visualizador@saude.campinas.sp.gov.br"
)

type seedTenant struct {
	nome, cnpj, email, cidade, estado, ibge string
}

var seedTenants = []seedTenant{
	{"Secretaria Municipal de Saúde de Campinas", "46.068.425/0001-33", "contato@saude.campinas.sp.gov.br", "Campinas", "SP", "350950"},
	{"Secretaria Municipal de Saúde de Recife", "10.565.000/0001-92", "contato@recife.pe.gov.br", "Recife", "PE", "261160"},
}

var seedRepasses = []struct {
	tipo, bloco, componente, programa string
	valor                             float64
}{
	{"FUNDO A FUNDO", "ATENÇÃO PRIMÁRIA", "PISO DA ATENÇÃO PRIMÁRIA", "CAPITAÇÃO PONDERADA", 1250000.00},
	{"FUNDO A FUNDO", "MÉDIA E ALTA COMPLEXIDADE", "TETO MAC", "ATENÇÃO ESPECIALIZADA", 3480000.50},
	{"CONVÊNIO", "INVESTIMENTO", "ESTRUTURAÇÃO DA REDE", "AQUISIÇÃO DE EQUIPAMENTOS", 420000.00},
	{"EMENDA PARLAMENTAR", "ATENÇÃO PRIMÁRIA", "INCREMENTO TEMPORÁRIO", "CUSTEIO PAP", 300000.00},
}

// Seed fills the stores with two tenants, one user per role and two years of
// ledger entries for each tenant.
func (s *Server) Seed() error {
	hash, err := users.HashPassword(SeedPassword)
	if err != nil {
		return errors.Wrap(err, "[Seed] hash password")
	}
	now := s.nowTime()

	var tenantIDs []string
	for _, st := range seedTenants {
		t := &tenants.Tenant{
			Nome:         st.nome,
			CNPJ:         st.cnpj,
			EmailContato: st.email,
			Cidade:       st.cidade,
			Estado:       st.estado,
			Ativo:        true,
			CriadoEm:     now,
			AtualizadoEm: now,
			CriadoPor:    "seed",
		}
		if err := s.tenants.Upsert(t); err != nil {
			return errors.Wrapf(err, "[Seed] tenant %s", st.nome)
		}
		tenantIDs = append(tenantIDs, t.ID)
		s.seedLedger(t.ID, st, now)
	}

	accounts := []struct {
		email, nome string
		role        roles.Role
		tenant      *string
	}{
		{SeedSuperAdmin, "Administrador SAFISAUDE", roles.SuperAdmin, nil},
		{SeedSuporteAdmin, "Equipe de Suporte", roles.SuporteAdmin, nil},
		{SeedFinanceiroAdmin, "Financeiro SAFISAUDE", roles.FinanceiroAdmin, nil},
		{SeedSecretario, "Maria Secretária", roles.Secretario, &tenantIDs[0]},
		{SeedFinanceiro, "João Financeiro", roles.Financeiro, &tenantIDs[0]},
		{SeedVisualizador, "Ana Visualizadora", roles.Visualizador, &tenantIDs[0]},
	}
	for _, a := range accounts {
		u := &users.User{
			Email:        a.email,
			Nome:         a.nome,
			Role:         a.role,
			TenantID:     a.tenant,
			Ativo:        true,
			PasswordHash: hash,
		}
		if err := s.users.Upsert(u); err != nil {
			return errors.Wrapf(err, "[Seed] user %s", a.email)
		}
	}
	return nil
}

func (s *Server) seedLedger(tenantID string, st seedTenant, now time.Time) {
	year := now.Year()
	for _, ano := range []int{year - 1, year} {
		for mes := 1; mes <= 12; mes++ {
			r := seedRepasses[(ano+mes)%len(seedRepasses)]
			desconto := r.valor * 0.02
			dia := min(mes+4, 28)
			s.ledger.Add(lancamentos.Lancamento{
				TenantID:        &tenantID,
				CNPJ:            cnpj.Strip(st.cnpj),
				NuProcesso:      fmt.Sprintf("25000.%06d/%d-%02d", ano*100+mes, ano, mes),
				Ano:             ano,
				Mes:             mes,
				NuCompetencia:   fmt.Sprintf("%d%02d", ano, mes),
				DiaPagamento:    &dia,
				TpRepasse:       r.tipo,
				NuOb:            fmt.Sprintf("%dOB%06d", ano, mes*731),
				UF:              st.estado,
				CoMunicipioIBGE: st.ibge,
				Municipio:       st.cidade,
				Entidade:        "FUNDO MUNICIPAL DE SAUDE DE " + st.cidade,
				Bloco:           r.bloco,
				Componente:      r.componente,
				Programa:        r.programa,
				Banco:           "001",
				Agencia:         fmt.Sprintf("%04d", 2900+len(st.cidade)),
				Conta:           fmt.Sprintf("%d-%d", 58000+mes%3, mes%3),
				ValorBruto:      r.valor,
				Desconto:        desconto,
				ValorLiquido:    r.valor - desconto,
				CriadoEm:        now,
				CriadoPor:       "seed",
				AtualizadoEm:    now,
			})
		}
	}
}
