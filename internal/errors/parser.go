package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo エラー情報
type ErrorInfo struct {
	Code    string // エラーコード（codes.go 参照）
	Message string // 利用者向けメッセージ
}

// ParseError ストレージ層のエラーを利用者向けのコードとメッセージに変換する。
// 内部の詳細は応答へ漏らさない。
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "サーバーエラーが発生しました",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM 基本エラー
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL エラー

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// 3. ネットワーク/接続エラー
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "外部サービスへの接続に失敗しました。しばらくしてから再度お試しください",
		}
	}

	// 4. 既定の内部エラー
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// メール重複（auth_users / admins）
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "このメールアドレスは既に使用されています",
		}
	}

	// auth_user_id 重複（同じ認証ユーザーに管理者行が二重登録）
	if strings.Contains(errLower, "auth_user_id") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "既に管理者として登録されています",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "既に存在するデータです",
	}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "customer_id") {
		return ErrorInfo{
			Code:    CustomerNotFound,
			Message: "顧客が見つかりません",
		}
	}
	if strings.Contains(errLower, "treatment_id") {
		return ErrorInfo{
			Code:    TreatmentNotFound,
			Message: "施術が見つかりません",
		}
	}
	if strings.Contains(errLower, "auth_user_id") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "認証ユーザーが見つかりません",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "参照先のデータが見つかりません",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "名前は必須です"}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "メールアドレスは必須です"}
	}
	if strings.Contains(errLower, "menu") {
		return ErrorInfo{Code: ValidationRequired, Message: "メニューは必須です"}
	}
	if strings.Contains(errLower, "stylist_name") {
		return ErrorInfo{Code: ValidationRequired, Message: "スタイリスト名は必須です"}
	}
	if strings.Contains(errLower, "date") {
		return ErrorInfo{Code: ValidationRequired, Message: "施術日は必須です"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "必須項目が不足しています",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "customer") || strings.Contains(contextLower, "顧客") {
		return "顧客が見つかりません"
	}
	if strings.Contains(contextLower, "treatment") || strings.Contains(contextLower, "施術") {
		return "施術が見つかりません"
	}
	if strings.Contains(contextLower, "image") || strings.Contains(contextLower, "画像") {
		return "画像が見つかりません"
	}
	if strings.Contains(contextLower, "admin") || strings.Contains(contextLower, "管理者") {
		return "管理者が見つかりません"
	}

	return "対象のデータが見つかりません"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "登録") {
		return "登録に失敗しました"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "更新") {
		return "更新に失敗しました"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "削除") {
		return "削除に失敗しました"
	}
	if strings.Contains(contextLower, "export") || strings.Contains(contextLower, "エクスポート") {
		return "エクスポートに失敗しました"
	}

	return "サーバーエラーが発生しました"
}

// ParseAndRespond エラーを解析して応答を返すヘルパー
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
