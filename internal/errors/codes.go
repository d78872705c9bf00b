package errors

// エラーコード定数
// 形式: CATEGORY_SPECIFIC_DETAIL
// フロントエンドはこのコードを基にメッセージをマッピングする

const (
	// ==================== 認証 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // ログイン必要
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // メール/パスワード不一致
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // トークン期限切れ
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 不正なトークン
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // メール重複

	// ==================== 認可/権限 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"     // アクセス権限なし
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"    // 管理者のみ
	AuthzSelfDelete   = "AUTHZ_SELF_DELETE"   // 自分自身の削除
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // 権限情報なし

	// ==================== 検証 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 不正な入力
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 不正なID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 不正な形式
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 範囲外
	ValidationRequired      = "VALIDATION_REQUIRED"       // 必須項目

	// ==================== リソース (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // リソースなし
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 既に存在
	ResourceConflict      = "RESOURCE_CONFLICT"       // 競合

	// ==================== 顧客 (CUSTOMER_) ====================
	CustomerNotFound = "CUSTOMER_NOT_FOUND" // 顧客なし

	// ==================== 施術 (TREATMENT_) ====================
	TreatmentNotFound = "TREATMENT_NOT_FOUND" // 施術なし
	ImageNotFound     = "IMAGE_NOT_FOUND"     // 画像なし

	// ==================== 管理者 (ADMIN_) ====================
	AdminNotFound = "ADMIN_NOT_FOUND" // 管理者なし

	// ==================== アップロード (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // 不正なファイル形式
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // ファイルサイズ超過
	UploadFileRequired    = "UPLOAD_FILE_REQUIRED"     // ファイル未指定
	UploadFailed          = "UPLOAD_FAILED"            // アップロード失敗

	// ==================== レート制限 (RATE_) ====================
	RateLimitExceeded = "RATE_LIMIT_EXCEEDED" // リクエスト過多

	// ==================== 内部エラー (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // サーバーエラー
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DBエラー
	InternalExportError   = "INTERNAL_EXPORT_ERROR"   // エクスポート失敗
)
