package models

type UserRole string

const (
	RoleOwner        UserRole = "Owner"
	RolePlantManager UserRole = "Plant Manager"
	RoleSupervisor   UserRole = "Supervisor"
	RoleAccountant   UserRole = "Accountant"
)

type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	FactoryID *string  `json:"factory_id"`
	Role      UserRole `json:"role"`
	CreatedAt string   `json:"created_at"`
}

// Credential is stored under its own key so the password hash never
// travels with the user profile payload.
type Credential struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

type Factory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	Timezone  string `json:"timezone"`
	CreatedAt string `json:"created_at"`
}
