package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 標準エラー応答
type ErrorResponse struct {
	Error   string `json:"error"`   // エラーコード（フロントエンドのマッピング用）
	Message string `json:"message"` // 利用者向けメッセージ（日本語）
}

// RespondWithError エラー応答ヘルパー
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// よく使うエラー応答の短縮関数

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "認証が必要です"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "管理者権限がありません"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "リクエストが多すぎます。しばらくしてから再度お試しください"
	}
	RespondWithError(c, http.StatusTooManyRequests, RateLimitExceeded, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "サーバーエラーが発生しました"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationError フィールド単位の検証エラー
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // フィールド別エラーメッセージ
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "入力値が正しくありません",
		Fields:  fields,
	})
}
