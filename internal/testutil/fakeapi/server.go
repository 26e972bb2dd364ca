// Package fakeapi is an in-memory helpdesk REST server with a websocket push
// channel. Tests point the console at it to exercise the real client stack.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/domain/client"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	uvo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/constants"
)

// Collection names, which are also the route prefixes.
const (
	Tickets       = "chamados"
	Categories    = "categorias"
	Clients       = "clientes"
	Contracts     = "contratos"
	ServiceOrders = "ordem-de-servicos"
	Users         = "users"
	MailLogs      = "emails"
)

type account struct {
	user user.User
	hash []byte
}

type Server struct {
	URL string

	srv    *httptest.Server
	tokens *tokenService
	hub    *hub

	mu       sync.Mutex
	seq      int64
	accounts map[string]*account
	data     map[string]*collection
	comments []ticket.Comment
	postal   map[string]client.PostalCodeInfo
	hits     map[string]int
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		tokens:   &tokenService{secret: []byte("fakeapi-secret"), ttl: time.Hour},
		hub:      newHub(),
		accounts: make(map[string]*account),
		data:     make(map[string]*collection),
		postal:   make(map[string]client.PostalCodeInfo),
		hits:     make(map[string]int),
	}
	for _, name := range []string{Tickets, Categories, Clients, Contracts, ServiceOrders, Users, MailLogs} {
		s.data[name] = &collection{}
	}

	s.srv = httptest.NewServer(s.router())
	s.URL = s.srv.URL
	t.Cleanup(s.Close)
	return s
}

func (s *Server) Close() {
	s.hub.mu.Lock()
	for p := range s.hub.peers {
		_ = p.conn.Close()
	}
	s.hub.mu.Unlock()
	s.srv.Close()
}

func (s *Server) nextID() int64 {
	s.seq++
	return s.seq
}

func now() string {
	return biztime.NowUTC().Format(time.RFC3339)
}

// AddUser registers an account that can sign in with password.
func (s *Server) AddUser(fullName, email, password string, role uvo.Role) user.User {
	hash, err := hashPassword(password)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	created := biztime.NowUTC()
	u := user.User{ID: s.nextID(), FullName: fullName, Email: email, Role: role, CreatedAt: &created}
	s.accounts[strings.ToLower(email)] = &account{user: u, hash: hash}
	s.mustAdd(Users, u)
	return u
}

// Token signs a credential for u without going through login.
func (s *Server) Token(u user.User) string {
	token, err := s.tokens.generate(u.ID, u.Role.String())
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) AddTicket(t ticket.Ticket) ticket.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.nextID()
	}
	if t.CreatedAt == nil {
		created := biztime.NowUTC()
		t.CreatedAt = &created
	}
	s.mustAdd(Tickets, t)
	return t
}

func (s *Server) AddCategory(name string) ticket.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := ticket.Category{ID: s.nextID(), Name: name}
	s.mustAdd(Categories, cat)
	return cat
}

func (s *Server) AddClient(c client.Client) client.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextID()
	}
	if c.Addresses == nil {
		c.Addresses = []client.Address{}
	}
	s.mustAdd(Clients, c)
	return c
}

// AddClients seeds n clients named "Cliente 01" onwards.
func (s *Server) AddClients(n int) {
	for i := 1; i <= n; i++ {
		s.AddClient(client.Client{
			Name:  fmt.Sprintf("Cliente %02d", i),
			Email: fmt.Sprintf("cliente%02d@example.com", i),
		})
	}
}

// AddPostalCode makes a postal code resolvable.
func (s *Server) AddPostalCode(code string, info client.PostalCodeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postal[code] = info
}

// AddComment stores a comment as if another console posted it and pushes it
// to every connected console.
func (s *Server) AddComment(c ticket.Comment) ticket.Comment {
	s.mu.Lock()
	if c.ID == 0 {
		c.ID = s.nextID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = biztime.NowUTC()
	}
	s.comments = append(s.comments, c)
	s.mu.Unlock()

	s.Push(c)
	return c
}

// Push sends a comment event without storing it.
func (s *Server) Push(c ticket.Comment) {
	data, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	frame, err := json.Marshal(map[string]any{"event": constants.EventNewComment, "data": json.RawMessage(data)})
	if err != nil {
		panic(err)
	}
	s.hub.broadcast(frame)
}

// Subscribers is the number of connected push clients.
func (s *Server) Subscribers() int {
	return s.hub.count()
}

// Hits counts the requests served for a route pattern, e.g.
// Hits("GET", "/chamados/:id/comentarios").
func (s *Server) Hits(method, route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+route]
}

// Count is the number of records in a collection.
func (s *Server) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data[name].records)
}

// Comments returns the stored thread of a ticket.
func (s *Server) Comments(ticketID int64) []ticket.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ticket.Comment
	for _, c := range s.comments {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	return out
}

// Ticket returns the stored ticket with id.
func (s *Server) Ticket(id int64) (ticket.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, r := s.data[Tickets].find(id)
	if r == nil {
		return ticket.Ticket{}, false
	}
	var t ticket.Ticket
	if err := decode(r, &t); err != nil {
		return ticket.Ticket{}, false
	}
	return t, true
}

// mustAdd stores v in its wire shape. Caller holds mu.
func (s *Server) mustAdd(name string, v any) {
	r, err := toRecord(v)
	if err != nil {
		panic(err)
	}
	s.data[name].add(r)
}

func decode(r record, out any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.countHits())

	r.POST("/login", s.login)
	r.GET("/ws", s.serveWS)

	api := r.Group("", s.requireAuth())
	api.GET("/me", s.me)

	s.resource(api, "/chamados", Tickets, true)
	api.PUT("/chamados/:id/resolvido", s.resolveTicket)
	api.GET("/chamados/:id/comentarios", s.listComments)
	api.POST("/chamados/:id/comentarios", s.createComment)
	api.PUT("/comentarios-chamados/:id", s.updateComment)
	api.DELETE("/comentarios-chamados/:id", s.deleteComment)

	api.GET("/categorias", s.listCategories)
	api.POST("/categorias", s.create(Categories))
	api.PUT("/categorias/:id", s.update(Categories))
	api.DELETE("/categorias/:id", s.remove(Categories))

	s.resource(api, "/clientes", Clients, false)
	api.GET("/enderecos/cep", s.lookupPostalCode)
	api.POST("/enderecos", s.createAddress)
	api.PUT("/enderecos/:id", s.updateAddress)
	api.DELETE("/enderecos/:id", s.deleteAddress)

	s.resource(api, "/contratos", Contracts, true)
	api.GET("/contratos/:id/pdf", s.pdf(Contracts))
	s.resource(api, "/ordem-de-servicos", ServiceOrders, true)
	api.GET("/ordem-de-servicos/:id/pdf", s.pdf(ServiceOrders))
	s.resource(api, "/users", Users, false)

	api.POST("/emails/enviar", s.sendMail)
	api.POST("/emails/enviar-lote", s.sendMailBatch)
	api.GET("/emails/logs", s.listMailLogs)
	api.GET("/emails/logs/:id", s.get(MailLogs))
	api.DELETE("/emails/logs/:id", s.remove(MailLogs))

	api.GET("/dashboard/resumo", s.dashboard)
	return r
}

func (s *Server) resource(g *gin.RouterGroup, path, name string, bodyFilter bool) {
	g.GET(path, s.list(name))
	if bodyFilter {
		g.POST(path+"/filtrar", s.filterBody(name))
	} else {
		g.GET(path+"/filtrar", s.filterQuery(name))
	}
	g.GET(path+"/:id", s.get(name))
	g.POST(path, s.create(name))
	g.PUT(path+"/:id", s.update(name))
	g.DELETE(path+"/:id", s.remove(name))
}

func (s *Server) countHits() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.hits[c.Request.Method+" "+c.FullPath()]++
		s.mu.Unlock()
		c.Next()
	}
}

const ctxUserID = "user_id"

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token ausente"})
			return
		}
		cl, err := s.tokens.verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido ou expirado"})
			return
		}
		c.Set(ctxUserID, cl.UserID)
		c.Next()
	}
}
