package domain

// ActionTokenKind differentiates single-use auth tokens.
type ActionTokenKind string

const (
	ActionTokenPasswordReset ActionTokenKind = "PASSWORD_RESET"
	ActionTokenMagicLink     ActionTokenKind = "MAGIC_LINK"
)
