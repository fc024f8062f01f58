package tenantrepofakes_test

import (
	"testing"

	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/tenants"
	tenantrepofakes "github.com/jrsteele09/safisaude-console/tenants/repofakes"
	"github.com/stretchr/testify/require"
)

func TestFakeTenantRepo(t *testing.T) {
	repo := tenantrepofakes.NewFakeTenantRepo()

	sp := &tenants.Tenant{Nome: "SMS São Paulo", CNPJ: "12.345.678/0001-99"}
	rj := &tenants.Tenant{Nome: "SMS Rio", CNPJ: "98.765.432/0001-10"}
	require.NoError(t, repo.Upsert(sp))
	require.NoError(t, repo.Upsert(rj))

	err := repo.Upsert(&tenants.Tenant{Nome: "Dup", CNPJ: "12345678000199"})
	require.ErrorIs(t, err, errors.ErrConflict)

	got, err := repo.GetByCNPJ("12345678000199")
	require.NoError(t, err)
	require.Equal(t, sp.ID, got.ID)

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "SMS Rio", list[0].Nome)

	require.NoError(t, repo.Delete(sp.ID))
	_, err = repo.Get(sp.ID)
	require.ErrorIs(t, err, errors.ErrNotFound)
	require.ErrorIs(t, repo.Delete(sp.ID), errors.ErrNotFound)
}
