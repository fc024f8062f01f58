package tenants

import (
	"github.com/jrsteele09/safisaude-console/cnpj"
	"github.com/jrsteele09/safisaude-console/validation"
)

const (
	msgNomeTooShort  = "Nome deve ter pelo menos 3 caracteres"
	msgCNPJInvalid   = "CNPJ inválido"
	msgSenhaTooShort = "Senha deve ter pelo menos 8 caracteres"
)

func checkCNPJ(errs validation.Errors, value string) {
	errs.Check(validation.Len(value) >= 14, "cnpj", msgCNPJInvalid)
	errs.Check(cnpj.IsFormatted(value), "cnpj", cnpj.ErrorMessage)
}

func checkEmail(errs validation.Errors, field, value string) {
	errs.Check(validation.IsEmail(value), field, validation.MsgEmailInvalid)
}

// Validate checks the tenant form. The secretário block is only checked when
// present.
func (r CreateRequest) Validate() error {
	errs := validation.Errors{}
	errs.Check(validation.Len(r.Nome) >= 3, "nome", msgNomeTooShort)
	checkCNPJ(errs, r.CNPJ)
	checkEmail(errs, "emailContato", r.EmailContato)
	if s := r.Secretario; s != nil {
		errs.Check(validation.Len(s.Nome) >= 3, "secretario.nome", msgNomeTooShort)
		checkEmail(errs, "secretario.email", s.Email)
		errs.Check(validation.Len(s.Senha) >= 8, "secretario.senha", msgSenhaTooShort)
	}
	return errs.Err()
}

// Validate checks the fields present in a partial update.
func (r UpdateRequest) Validate() error {
	errs := validation.Errors{}
	if r.Nome != nil {
		errs.Check(validation.Len(*r.Nome) >= 3, "nome", msgNomeTooShort)
	}
	if r.CNPJ != nil {
		checkCNPJ(errs, *r.CNPJ)
	}
	if r.EmailContato != nil {
		checkEmail(errs, "emailContato", *r.EmailContato)
	}
	return errs.Err()
}
