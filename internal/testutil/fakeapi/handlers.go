package fakeapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/domain/client"
	"helpdesk/internal/domain/dashboard"
	"helpdesk/internal/domain/mail"
	"helpdesk/internal/domain/ticket"
	tvo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

// required lists the keys a create must carry per collection.
var required = map[string][]string{
	Tickets:    {"titulo", "descricao"},
	Categories: {"nome"},
	Clients:    {"nome", "email"},
	Contracts:  {"numeroContrato", "clienteId"},
	Users:      {"fullName", "email"},
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Registro não encontrado"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Requisição inválida", "errors": []errors.FieldError{{Message: err.Error()}}})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		notFound(c)
		return 0, false
	}
	return id, true
}

func (s *Server) login(c *gin.Context) {
	var creds user.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	acc := s.accounts[strings.ToLower(creds.Email)]
	s.mu.Unlock()

	if acc == nil || !checkPassword(acc.hash, creds.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Credenciais inválidas"})
		return
	}
	token, err := s.tokens.generate(acc.user.ID, acc.user.Role.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user.AuthResult{Token: token, User: acc.user})
}

func (s *Server) currentUser(c *gin.Context) (user.User, bool) {
	id := c.GetInt64(ctxUserID)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user, true
		}
	}
	return user.User{}, false
}

func (s *Server) me(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Usuário não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// view decorates a record with the entities the server embeds. Caller
// holds mu.
func (s *Server) view(r record) record {
	out := make(record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	if id, ok := r["clienteId"]; ok {
		if _, cl := s.data[Clients].find(toInt64(id)); cl != nil {
			out["cliente"] = map[string]any{"id": cl["id"], "nome": cl["nome"]}
		}
	}
	return out
}

func (s *Server) writePage(c *gin.Context, name string, items []record, page, limit int, snake bool) {
	p := utils.ValidatePagination(page, limit)
	start, end := utils.ApplyPagination(len(items), p.Page, p.PageSize)

	data := make([]record, 0, end-start)
	for _, r := range items[start:end] {
		data = append(data, s.view(r))
	}

	total := int64(len(items))
	lastPage := utils.TotalPages(total, p.PageSize)
	var meta gin.H
	if snake {
		meta = gin.H{"total": total, "current_page": p.Page, "per_page": p.PageSize, "last_page": lastPage}
	} else {
		meta = gin.H{"total": total, "currentPage": p.Page, "perPage": p.PageSize, "lastPage": lastPage}
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "meta": meta})
}

func (s *Server) list(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writePage(c, name, s.data[name].records, page, limit, true)
	}
}

func (s *Server) filterQuery(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria := make(map[string]string)
		for k, v := range c.Request.URL.Query() {
			if k != "page" && k != "limit" && len(v) > 0 {
				criteria[k] = v[0]
			}
		}
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writePage(c, name, s.data[name].filter(criteria), page, limit, false)
	}
}

func (s *Server) filterBody(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body record
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		page := int(toInt64(body["page"]))
		limit := int(toInt64(body["limit"]))
		criteria := make(map[string]string)
		for k, v := range body {
			if k != "page" && k != "limit" && v != nil {
				criteria[k] = toString(v)
			}
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writePage(c, name, s.data[name].filter(criteria), page, limit, false)
	}
}

func (s *Server) get(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		_, r := s.data[name].find(id)
		if r == nil {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, s.view(r))
	}
}

func missingFields(name string, r record) []errors.FieldError {
	var fields []errors.FieldError
	for _, key := range required[name] {
		if toString(r[key]) == "" {
			fields = append(fields, errors.FieldError{Field: key, Message: fmt.Sprintf("O campo %s é obrigatório", key)})
		}
	}
	return fields
}

func (s *Server) create(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r record
		if err := c.ShouldBindJSON(&r); err != nil {
			badRequest(c, err)
			return
		}
		if fields := missingFields(name, r); len(fields) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Dados inválidos", "errors": fields})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if name == Clients || name == Users {
			email := strings.ToLower(toString(r["email"]))
			for _, existing := range s.data[name].records {
				if strings.ToLower(toString(existing["email"])) == email {
					c.JSON(http.StatusConflict, gin.H{
						"message": "E-mail já cadastrado",
						"errors":  []errors.FieldError{{Field: "email", Message: "E-mail já cadastrado"}},
					})
					return
				}
			}
		}

		r["id"] = s.nextID()
		r["createdAt"] = now()
		switch name {
		case Clients:
			r["enderecos"] = []any{}
		case Users:
			if err := s.register(r); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
		}
		s.data[name].add(r)
		c.JSON(http.StatusCreated, s.view(r))
	}
}

// register turns a created user record into an account that can sign in.
// Caller holds mu.
func (s *Server) register(r record) error {
	password := toString(r["password"])
	delete(r, "password")
	var u user.User
	if err := decode(r, &u); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	s.accounts[strings.ToLower(u.Email)] = &account{user: u, hash: hash}
	return nil
}

func (s *Server) update(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var changes record
		if err := c.ShouldBindJSON(&changes); err != nil {
			badRequest(c, err)
			return
		}
		delete(changes, "password")
		changes["updatedAt"] = now()

		s.mu.Lock()
		defer s.mu.Unlock()
		r, found := s.data[name].merge(id, changes)
		if !found {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, s.view(r))
	}
}

func (s *Server) remove(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.data[name].remove(id) {
			notFound(c)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) resolveTicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, found := s.data[Tickets].merge(id, record{
		"status":    string(tvo.StatusResolved),
		"closedAt":  now(),
		"updatedAt": now(),
	})
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) listComments(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, r := s.data[Tickets].find(id); r == nil {
		notFound(c)
		return
	}
	out := make([]ticket.Comment, 0)
	for _, cm := range s.comments {
		if cm.TicketID == id {
			out = append(out, cm)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createComment(c *gin.Context) {
	ticketID, ok := paramID(c)
	if !ok {
		return
	}
	var form ticket.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	if strings.TrimSpace(form.Text) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Dados inválidos",
			"errors":  []errors.FieldError{{Field: "comentario", Message: "O comentário é obrigatório"}},
		})
		return
	}
	author, _ := s.currentUser(c)

	s.mu.Lock()
	if _, r := s.data[Tickets].find(ticketID); r == nil {
		s.mu.Unlock()
		notFound(c)
		return
	}
	cm := ticket.Comment{
		ID:        s.nextID(),
		TicketID:  ticketID,
		UserID:    author.ID,
		Text:      form.Text,
		CreatedAt: biztime.NowUTC(),
		Author:    &ticket.Author{ID: author.ID, FullName: author.FullName, Email: author.Email, Role: author.Role.String()},
	}
	s.comments = append(s.comments, cm)
	s.mu.Unlock()

	s.Push(cm)
	c.JSON(http.StatusCreated, cm)
}

func (s *Server) findComment(id int64) int {
	for i, cm := range s.comments {
		if cm.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) updateComment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var form ticket.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findComment(id)
	if i < 0 {
		notFound(c)
		return
	}
	updated := biztime.NowUTC()
	s.comments[i].Text = form.Text
	s.comments[i].UpdatedAt = &updated
	c.JSON(http.StatusOK, s.comments[i])
}

func (s *Server) deleteComment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findComment(id)
	if i < 0 {
		notFound(c)
		return
	}
	s.comments = append(s.comments[:i], s.comments[i+1:]...)
	c.Status(http.StatusNoContent)
}

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.data[Categories].records)
}

func (s *Server) lookupPostalCode(c *gin.Context) {
	s.mu.Lock()
	info, ok := s.postal[c.Query("cep")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "CEP não encontrado"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// addresses returns the embedded address list of a client record.
func addresses(cl record) []any {
	list, _ := cl["enderecos"].([]any)
	return list
}

func (s *Server) createAddress(c *gin.Context) {
	var form client.AddressForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, cl := s.data[Clients].find(form.ClientID)
	if cl == nil {
		notFound(c)
		return
	}
	addr := client.Address{
		ID:           s.nextID(),
		Street:       form.Street,
		Number:       form.Number,
		Neighborhood: form.Neighborhood,
		City:         form.City,
		State:        form.State,
		PostalCode:   form.PostalCode,
		ClientID:     form.ClientID,
	}
	r, err := toRecord(addr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	cl["enderecos"] = append(addresses(cl), map[string]any(r))
	c.JSON(http.StatusCreated, addr)
}

// findAddress locates an address and the client holding it. Caller holds mu.
func (s *Server) findAddress(id int64) (record, int) {
	for _, cl := range s.data[Clients].records {
		for i, item := range addresses(cl) {
			if m, ok := item.(map[string]any); ok && toInt64(m["id"]) == id {
				return cl, i
			}
		}
	}
	return nil, -1
}

func (s *Server) updateAddress(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var form client.AddressForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cl, i := s.findAddress(id)
	if cl == nil {
		notFound(c)
		return
	}
	addr := client.Address{
		ID:           id,
		Street:       form.Street,
		Number:       form.Number,
		Neighborhood: form.Neighborhood,
		City:         form.City,
		State:        form.State,
		PostalCode:   form.PostalCode,
		ClientID:     cl.id(),
	}
	r, err := toRecord(addr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	addresses(cl)[i] = map[string]any(r)
	c.JSON(http.StatusOK, addr)
}

func (s *Server) deleteAddress(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cl, i := s.findAddress(id)
	if cl == nil {
		notFound(c)
		return
	}
	list := addresses(cl)
	cl["enderecos"] = append(list[:i], list[i+1:]...)
	c.Status(http.StatusNoContent)
}

func (s *Server) pdf(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		s.mu.Lock()
		_, r := s.data[name].find(id)
		s.mu.Unlock()
		if r == nil {
			notFound(c)
			return
		}
		c.Data(http.StatusOK, "application/pdf", []byte(fmt.Sprintf("%%PDF-1.4\n%% %s %d\n%%%%EOF\n", name, id)))
	}
}

// mailLogPageSize is fixed; the logs route ignores limit.
const mailLogPageSize = 10

func (s *Server) deliver(msg mail.Message) mail.Result {
	status, text := mail.StatusSent, "E-mail enviado com sucesso"
	entry := record{
		"id":           s.nextID(),
		"destinatario": msg.To,
		"assunto":      msg.Subject,
		"mensagem":     msg.Body,
		"data_envio":   now(),
	}
	if strings.HasSuffix(msg.To, "@falha.test") {
		status, text = mail.StatusFailed, "Falha ao enviar e-mail"
		entry["erro"] = "caixa postal inexistente"
	}
	entry["status"] = status
	s.data[MailLogs].add(entry)
	logID := entry.id()
	return mail.Result{Message: text, Status: status, LogID: &logID}
}

func (s *Server) sendMail(c *gin.Context) {
	var msg mail.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.deliver(msg))
}

func (s *Server) sendMailBatch(c *gin.Context) {
	var msgs []mail.Message
	if err := c.ShouldBindJSON(&msgs); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]mail.Result, 0, len(msgs))
	for _, msg := range msgs {
		results = append(results, s.deliver(msg))
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) listMailLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.data[MailLogs].records
	newest := make([]record, len(records))
	for i, r := range records {
		newest[len(records)-1-i] = r
	}
	s.writePage(c, MailLogs, newest, page, mailLogPageSize, true)
}

func (s *Server) dashboard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := map[string]int64{}
	byPriority := map[string]int64{}
	var summary dashboard.Summary
	for _, r := range s.data[Tickets].records {
		byStatus[toString(r["status"])]++
		byPriority[toString(r["prioridade"])]++
	}
	for _, st := range tvo.TicketStatuses {
		if n := byStatus[string(st)]; n > 0 {
			summary.ByStatus = append(summary.ByStatus, dashboard.StatusCount{Status: string(st), Total: n})
		}
	}
	for _, p := range tvo.Priorities {
		if n := byPriority[string(p)]; n > 0 {
			summary.ByPriority = append(summary.ByPriority, dashboard.PriorityCount{Priority: string(p), Total: n})
		}
	}
	c.JSON(http.StatusOK, summary)
}
