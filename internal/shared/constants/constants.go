package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 1000

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"

	BearerPrefix = "Bearer "

	// Realtime event names
	EventNewComment = "novoComentario"

	// Error messages
	ErrMsgLoginFailed      = "Falha no login, verifique suas credenciais"
	ErrMsgEmailRequired    = "O e-mail é obrigatório"
	ErrMsgPasswordRequired = "A senha é obrigatória"
	ErrMsgNotSignedIn      = "Sessão não iniciada, faça login"
	ErrMsgForbidden        = "Você não tem permissão para esta ação"
	ErrMsgSessionExpired   = "Sessão expirada, faça login novamente"
)
