package domain

// User represents an application user able to act within organizations.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"` // Unique
	PasswordHash string `json:"-"`     // bcrypt, never serialized
	IsActive     bool   `json:"isActive"`
	AuditFields
}
