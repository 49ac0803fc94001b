package flows

// Deps groups flow dependency sets. The root engine builds this once at
// Build time and delegates request methods to the matching flow.
type Deps struct {
	Login    LoginDeps
	Refresh  RefreshDeps
	Logout   LogoutDeps
	Validate ValidateDeps
}

// UserRecord is the flow-local view of an identity provider record.
type UserRecord struct {
	UserID       string
	Email        string
	Name         string
	PasswordHash string
	Roles        []string
	Allowed      bool
}
