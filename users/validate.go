package users

import (
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/validation"
)

const (
	msgNomeRequired  = "Nome é obrigatório"
	msgNomeTooShort  = "Nome deve ter no mínimo 3 caracteres"
	msgNomeTooLong   = "Nome não pode exceder 100 caracteres"
	msgRoleInvalid   = "Perfil inválido"
	msgSenhaRequired = "Senha é obrigatória"
	msgSenhaTooShort = "Senha deve ter no mínimo 6 caracteres"
	msgSenhaTooLong  = "Senha não pode exceder 128 caracteres"
)

func checkNome(errs validation.Errors, nome string) {
	n := validation.Len(nome)
	errs.Check(n >= 1, "nome", msgNomeRequired)
	errs.Check(n >= 3, "nome", msgNomeTooShort)
	errs.Check(n <= 100, "nome", msgNomeTooLong)
}

// Validate checks a create form before it is submitted.
func (r CreateRequest) Validate() error {
	errs := validation.Errors{}
	checkNome(errs, r.Nome)
	errs.Email("email", r.Email)
	errs.Check(r.Role.Assignable(), "role", msgRoleInvalid)

	n := validation.Len(r.Password)
	errs.Check(n >= 1, "password", msgSenhaRequired)
	errs.Check(n >= 6, "password", msgSenhaTooShort)
	errs.Check(n <= 128, "password", msgSenhaTooLong)
	return errs.Err()
}

// ValidateForm checks the edit form, where nome and role are both required.
func ValidateForm(nome string, role roles.Role) error {
	errs := validation.Errors{}
	checkNome(errs, nome)
	errs.Check(role.Assignable(), "role", msgRoleInvalid)
	return errs.Err()
}

// Validate checks the fields present in a partial update.
func (r UpdateRequest) Validate() error {
	errs := validation.Errors{}
	if r.Nome != nil {
		checkNome(errs, *r.Nome)
	}
	if r.Role != nil {
		errs.Check(r.Role.Assignable(), "role", msgRoleInvalid)
	}
	return errs.Err()
}
