package entities

// UserResponse mirrors the session endpoint: who am I and what can I do.
// Field names follow the frontend contract.
type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}
