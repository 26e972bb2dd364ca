package filterform

import (
	sovo "helpdesk/internal/domain/serviceorder/valueobjects"
	tvo "helpdesk/internal/domain/ticket/valueobjects"
	uvo "helpdesk/internal/domain/user/valueobjects"
)

func options[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func TicketFields() []Field {
	return []Field{
		{Name: "search", Label: "Busca", Kind: KindText},
		{Name: "status", Label: "Status", Kind: KindEnum, Options: options(tvo.TicketStatuses)},
		{Name: "prioridade", Label: "Prioridade", Kind: KindEnum, Options: options(tvo.Priorities)},
		{Name: "categoriaId", Label: "Categoria", Kind: KindInt},
		{Name: "tecnicoId", Label: "Técnico", Kind: KindInt},
		{Name: "userId", Label: "Usuário", Kind: KindInt},
		{Name: "dataInicio", Label: "Data inicial", Kind: KindDate},
		{Name: "dataFim", Label: "Data final", Kind: KindDate},
	}
}

func ClientFields() []Field {
	return []Field{
		{Name: "nome", Label: "Nome", Kind: KindText},
		{Name: "email", Label: "E-mail", Kind: KindText},
		{Name: "telefone", Label: "Telefone", Kind: KindText},
		{Name: "cidade", Label: "Cidade", Kind: KindText},
		{Name: "estado", Label: "Estado", Kind: KindText},
	}
}

func ContractFields() []Field {
	return []Field{
		{Name: "numeroContrato", Label: "Número", Kind: KindText},
		{Name: "clienteNome", Label: "Cliente", Kind: KindText},
		{Name: "clienteId", Label: "ID do cliente", Kind: KindInt},
		{Name: "ativo", Label: "Ativo", Kind: KindBool},
	}
}

func ServiceOrderFields() []Field {
	return []Field{
		{Name: "clienteId", Label: "Cliente", Kind: KindInt},
		{Name: "tecnicoId", Label: "Técnico", Kind: KindInt},
		{Name: "chamadoId", Label: "Chamado", Kind: KindInt},
		{Name: "status", Label: "Status", Kind: KindEnum, Options: options(sovo.OrderStatuses)},
		{Name: "tipoAtendimento", Label: "Atendimento", Kind: KindEnum, Options: options(sovo.ServiceModes)},
		{Name: "dataInicio", Label: "Data inicial", Kind: KindDate},
		{Name: "dataFim", Label: "Data final", Kind: KindDate},
	}
}

func UserFields() []Field {
	return []Field{
		{Name: "fullName", Label: "Nome", Kind: KindText},
		{Name: "email", Label: "E-mail", Kind: KindText},
		{Name: "tipo", Label: "Tipo", Kind: KindEnum, Options: options(uvo.Roles)},
	}
}
