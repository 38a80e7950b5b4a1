package intent

import "regexp"

// Movement type values as stored in movements.type.
const (
	MovementExpense = "Egreso"
	MovementIncome  = "Ingreso"
)

// Independent lexical probes over the expanded, normalized question. Each
// filter is optional and evaluated on its own: a question can carry
// currency, movement type, and role at once.
var (
	currencyUSDRe = regexp.MustCompile(`\bdolar(es)?\b|\busd\b|\bu\$s\b|\bverdes\b`)
	currencyARSRe = regexp.MustCompile(`\bpesos?\b|\bars\b`)

	typeExpenseRe = regexp.MustCompile(`\bgast\w*\b|\bpagu\w*\b|\bpago\w*\b|\begreso\w*\b|\bcompr\w*\b`)
	typeIncomeRe  = regexp.MustCompile(`\bingreso\w*\b|\bcobr\w*\b|\bfactur\w*\b|\bentrada\w*\b`)

	roleSubcontractorRe = regexp.MustCompile(`\bsubcontratista\w*\b`)
	rolePersonnelRe     = regexp.MustCompile(`\bpersonal\b|\bempleado\w*\b|\bobrero\w*\b`)
	rolePartnerRe       = regexp.MustCompile(`\bsocio\w*\b`)
)

// detectFilters probes the expanded question for the three optional
// filters.
func detectFilters(expanded string) Filters {
	var f Filters

	switch {
	case currencyUSDRe.MatchString(expanded):
		f.Currency = "USD"
	case currencyARSRe.MatchString(expanded):
		f.Currency = "ARS"
	}

	switch {
	case typeExpenseRe.MatchString(expanded):
		f.Type = MovementExpense
	case typeIncomeRe.MatchString(expanded):
		f.Type = MovementIncome
	}

	switch {
	case roleSubcontractorRe.MatchString(expanded):
		f.Role = "subcontratista"
	case rolePersonnelRe.MatchString(expanded):
		f.Role = "personal"
	case rolePartnerRe.MatchString(expanded):
		f.Role = "socio"
	}

	return f
}
