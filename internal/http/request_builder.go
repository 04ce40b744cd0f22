package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/i18n"
	"github.com/hyperkh65/loadsim/internal/middleware"
)

// envelopePool recycles response envelopes between requests. Values are
// zeroed before they go back.
type envelopePool[T any] struct {
	pool sync.Pool
}

func (p *envelopePool[T]) get() *T {
	if v, ok := p.pool.Get().(*T); ok {
		return v
	}
	return new(T)
}

func (p *envelopePool[T]) put(v *T) {
	var zero T
	*v = zero
	p.pool.Put(v)
}

var (
	successEnvelopes envelopePool[dto.SuccessResponse]
	errorEnvelopes   envelopePool[dto.ErrorResponse]
)

// ResponseBuilder writes the data and error envelopes every endpoint
// returns, stamped with the request ID.
type ResponseBuilder struct {
	c *gin.Context
}

func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Locale returns the negotiated response language.
func (b *ResponseBuilder) Locale() string {
	return i18n.GetLocale(b.c)
}

// Success wraps data in the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := successEnvelopes.get()
	defer successEnvelopes.put(resp)

	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	b.c.JSON(statusCode, resp)
}

func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// Error sends an error response whose message is the translation of messageKey.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithDetails(statusCode, i18n.GetTranslator().Translate(messageKey, b.Locale()), nil, err)
}

// Errorf is Error for message keys that take format arguments.
func (b *ResponseBuilder) Errorf(statusCode int, messageKey string, err error, args ...interface{}) {
	b.ErrorWithDetails(statusCode, i18n.GetTranslator().Translatef(messageKey, b.Locale(), args...), nil, err)
}

// ErrorWithDetails aborts the request with an error envelope. A non-nil err
// is attached to the context so the request log records the cause.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, message string, details map[string]string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}

	resp := errorEnvelopes.get()
	defer errorEnvelopes.put(resp)

	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	b.c.AbortWithStatusJSON(statusCode, resp)
}

// Validator is implemented by request bodies that can check themselves.
type Validator interface {
	Validate() error
}

// BuildRequest binds the JSON body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// BuildRequestAndValidate binds the JSON body and validates it when T
// implements Validator.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if validator, ok := any(req).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}
