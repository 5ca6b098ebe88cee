package domain

import "errors"

// Kinds. Every user-facing failure unwraps to exactly one of these.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrBadRequest    = errors.New("bad request")
	ErrUnprocessable = errors.New("unprocessable entity")
)

// Error is a failure with a message that is safe to show to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func Unauthorized(msg string) error  { return &Error{Kind: ErrUnauthorized, Message: msg} }
func Forbidden(msg string) error     { return &Error{Kind: ErrForbidden, Message: msg} }
func NotFound(msg string) error      { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) error      { return &Error{Kind: ErrConflict, Message: msg} }
func BadRequest(msg string) error    { return &Error{Kind: ErrBadRequest, Message: msg} }
func Unprocessable(msg string) error { return &Error{Kind: ErrUnprocessable, Message: msg} }

var (
	// auth
	ErrUserNotAuthorized  = Unauthorized("Usuário não autorizado!")
	ErrInvalidPassword    = Unauthorized("Senha inválida!")
	ErrRefreshUserMissing = Unauthorized("Usuário não autorizado.")
	ErrNotLoggedIn        = Unauthorized("Usuário não logado!")
	ErrInvalidToken       = Unauthorized("Token inválido ou expirado.")

	// person
	ErrPersonsNotFound    = NotFound("Pessoas não encontradas.")
	ErrPersonNotFound     = NotFound("Pessoa não encontrada.")
	ErrEmailTaken         = Conflict("E-mail já está cadastrado.")
	ErrPersonUpdateDenied = Forbidden("Você não tem autorização para atualizar essa pessoa.")
	ErrPersonDeleteDenied = Forbidden("Você não tem autorização para deletar essa pessoa.")
	ErrPictureTooSmall    = BadRequest("Arquivo muito pequeno!")
	ErrPictureInvalid     = Unprocessable("Arquivo inválido: envie uma imagem jpeg, jpg ou png de até 10MB.")
	ErrPictureMissing     = Unprocessable("Arquivo é obrigatório.")

	// messages
	ErrMessagesNotFound    = NotFound("Mensagens não encontradas.")
	ErrMessageNotFound     = NotFound("Mensagem não encontrada.")
	ErrSenderNotFound      = NotFound("Remetente não encontrado.")
	ErrRecipientNotFound   = NotFound("Destinatário não encontrado.")
	ErrMessageUpdateDenied = Forbidden("Você não tem autorização para atualizar essa mensagem.")
	ErrMessageDeleteDenied = Forbidden("Você não tem autorização para deletar essa mensagem.")

	// request parsing
	ErrIDNotNumeric  = BadRequest("É esperado uma string numérica.")
	ErrIDNegative    = BadRequest("É esperado um número maior que zero (0).")
	ErrMalformedBody = BadRequest("Corpo da requisição inválido.")
)

// MessageOf returns the client-facing message carried by err, if any.
func MessageOf(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Message, true
	}
	return "", false
}
