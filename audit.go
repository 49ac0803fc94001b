package guestauth

const (
	auditEventLoginSuccess    = "login_success"
	auditEventLoginFailure    = "login_failure"
	auditEventRefreshSuccess  = "refresh_success"
	auditEventRefreshFailure  = "refresh_failure"
	auditEventRefreshRevoked  = "refresh_revoked"
	auditEventLogout          = "logout"
	auditEventLogoutAll       = "logout_all"
	auditEventValidateFailure = "validate_failure"
)
