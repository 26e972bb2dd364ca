package editor

import (
	"github.com/go-playground/validator/v10"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/utils"
)

const tagUrgentNeedsCategory = "urgent_needs_category"

func init() {
	utils.RegisterStructRule(ticketFormRules, ticket.Form{})
	utils.RegisterRuleMessage(tagUrgentNeedsCategory, "chamados urgentes precisam de uma categoria")
}

// ticketFormRules holds the ticket checks a field tag cannot express.
func ticketFormRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(ticket.Form)
	if f.Priority.IsUrgent() && (f.CategoryID == nil || *f.CategoryID <= 0) {
		sl.ReportError(f.CategoryID, "categoriaId", "CategoryID", tagUrgentNeedsCategory, "")
	}
}
