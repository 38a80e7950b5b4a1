package intent

import "github.com/obraflow/obraflow/internal/entities"

// defaultPatterns is the built-in intent registry. Keywords are written in
// the canonical, normalized vocabulary the synonym engine expands into.
// Selection is by score; registry order is only the tie-break.
func defaultPatterns() []Pattern {
	return []Pattern{
		{
			Type:          TypeFinancialQuery,
			Subtype:       SubtypeExpenses,
			Keywords:      []string{"gaste", "gasto", "gastos", "pague", "pagos", "compre"},
			Priority:      10,
			SuggestedTool: "getDateRangeMovements",
		},
		{
			Type:          TypeFinancialQuery,
			Subtype:       SubtypeIncome,
			Keywords:      []string{"ingreso", "ingresos", "cobre", "cobros", "facture"},
			Priority:      10,
			SuggestedTool: "getDateRangeMovements",
		},
		{
			Type:          TypeFinancialQuery,
			Subtype:       SubtypeBalance,
			Keywords:      []string{"saldo", "queda", "disponible", "dinero"},
			Priority:      8,
			SuggestedTool: "getGeneralSummary",
		},
		{
			Type:             TypeProjectStatus,
			Keywords:         []string{"proyecto", "avance", "estado", "presupuesto", "costo"},
			Priority:         9,
			RequiredEntities: []entities.Type{entities.TypeProject},
			SuggestedTool:    "getProjectBalance",
		},
		{
			Type:             TypeContactMovements,
			Keywords:         []string{"contacto", "proveedor", "subcontratista", "debo", "movimiento", "movimientos"},
			Priority:         9,
			RequiredEntities: []entities.Type{entities.TypeContact},
			SuggestedTool:    "getContactMovements",
		},
		{
			Type:             TypeWalletBalance,
			Keywords:         []string{"billetera", "cuenta", "saldo"},
			Priority:         8,
			RequiredEntities: []entities.Type{entities.TypeWallet},
			SuggestedTool:    "getWalletBalance",
		},
		{
			Type:          TypeCategoryBreakdown,
			Keywords:      []string{"categoria", "desglose", "distribucion", "rubros"},
			Priority:      8,
			SuggestedTool: "getCategoryBreakdown",
		},
	}
}
