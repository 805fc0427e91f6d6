package apierr

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ===== Error model =====

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
	Details map[string]any
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func Invalid(msg string) *APIError         { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func Unauthenticated(msg string) *APIError { return &APIError{Code: CodeUnauthenticated, Message: msg} }
func Forbidden(msg string) *APIError       { return &APIError{Code: CodeForbidden, Message: msg} }
func NotFound(msg string) *APIError        { return &APIError{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) *APIError        { return &APIError{Code: CodeConflict, Message: msg} }
func Internal(msg string) *APIError        { return &APIError{Code: CodeInternal, Message: msg} }

// InvalidField はどのフィールドが不正かを details に載せる
func InvalidField(field, msg string) *APIError {
	return &APIError{Code: CodeInvalidArgument, Message: msg, Details: map[string]any{"field": field}}
}

// ConflictState は現在の状態を details に載せる（状態遷移の失敗用）
func ConflictState(msg, state string) *APIError {
	return &APIError{Code: CodeConflict, Message: msg, Details: map[string]any{"current_state": state}}
}

// Is は err が指定コードの APIError かどうか
func Is(err error, code Code) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == code
}

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeUnauthenticated:
			return http.StatusUnauthorized
		case CodeForbidden:
			return http.StatusForbidden
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// ===== Wire format =====

type errorDTO struct {
	Error struct {
		Code    Code           `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details,omitempty"`
	} `json:"error"`
}

func Body(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func BodyFrom(err error) errorDTO {
	var api *APIError
	if errors.As(err, &api) {
		b := Body(api.Code, api.Message)
		b.Error.Details = api.Details
		return b
	}
	// 想定外のエラーは中身を返さない
	return Body(CodeInternal, "internal error")
}

// RequestIDKey は requestid ミドルウェアが gin.Context に詰めるキー
const RequestIDKey = "request_id"

// Respond はエラーをステータスとボディに変換して書き出す
func Respond(c *gin.Context, err error) {
	status := ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, c.GetString(RequestIDKey), err)
	}
	c.AbortWithStatusJSON(status, BodyFrom(err))
}

// BadJSON はバインド失敗時の共通レスポンス
func BadJSON(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Body(CodeInvalidArgument, "invalid json or missing required fields"))
}
