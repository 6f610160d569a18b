package audit

import "fmt"

// AuthenticateEvent records an authentication attempt against the API.
type AuthenticateEvent struct {
	ApiKeyID     string
	TenantID     string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("api key %s successfully authenticated", e.ApiKeyID)
	}
	msg := "authentication failed"
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.Success {
		sd[SDIDAuth] = map[string]string{
			"key":    e.ApiKeyID,
			"tenant": e.TenantID,
		}
	}
	return sd
}

// KeyMintEvent records the creation of a new API key.
type KeyMintEvent struct {
	ApiKeyID  string
	KeyName   string
	TenantID  string
	ProjectID string
	ClientIP  string
}

func (e KeyMintEvent) MessageID() string {
	return "key-mint"
}

func (e KeyMintEvent) Message() string {
	scope := "tenant-wide"
	if e.ProjectID != "" {
		scope = "project " + e.ProjectID
	}
	return fmt.Sprintf("api key %s (%s) minted for tenant %s, scope %s", e.ApiKeyID, e.KeyName, e.TenantID, scope)
}

func (e KeyMintEvent) Severity() Severity {
	return SeverityNotice
}

func (e KeyMintEvent) Facility() int {
	return FacilityAuth
}

func (e KeyMintEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"key":    e.ApiKeyID,
			"tenant": e.TenantID,
		},
		SDIDAction: {
			"operation": "mint",
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.ProjectID != "" {
		sd[SDIDSubject]["project"] = e.ProjectID
	}
	return sd
}

// KeyRevokeEvent records the revocation of an API key.
type KeyRevokeEvent struct {
	ApiKeyID string
	ActorID  string
	TenantID string
	ClientIP string
}

func (e KeyRevokeEvent) MessageID() string {
	return "key-revoke"
}

func (e KeyRevokeEvent) Message() string {
	return fmt.Sprintf("api key %s revoked by %s", e.ApiKeyID, e.ActorID)
}

func (e KeyRevokeEvent) Severity() Severity {
	return SeverityNotice
}

func (e KeyRevokeEvent) Facility() int {
	return FacilityAuth
}

func (e KeyRevokeEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"key":    e.ApiKeyID,
			"tenant": e.TenantID,
		},
		SDIDAction: {
			"operation": "revoke",
			"actor":     e.ActorID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}

// BootstrapEvent records an attempt to bootstrap a new tenant with the
// shared provisioning secret.
type BootstrapEvent struct {
	TenantID   string
	TenantName string
	ClientIP   string
	Success    bool
}

func (e BootstrapEvent) MessageID() string {
	return "bootstrap"
}

func (e BootstrapEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("tenant %s (%s) bootstrapped", e.TenantName, e.TenantID)
	}
	return "bootstrap attempt rejected"
}

func (e BootstrapEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e BootstrapEvent) Facility() int {
	return FacilityAuthPriv
}

func (e BootstrapEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.Success {
		sd[SDIDSubject] = map[string]string{
			"tenant": e.TenantID,
		}
	}
	return sd
}

// SecretAccessEvent records a read or write of a secret value.
type SecretAccessEvent struct {
	ActorID    string
	TenantID   string
	ProjectID  string
	Definition string
	Operation  string // fetch, create, update, delete
	ClientIP   string
}

func (e SecretAccessEvent) MessageID() string {
	return "secret"
}

func (e SecretAccessEvent) Message() string {
	return fmt.Sprintf("%s performed %s on %s in project %s", e.ActorID, e.Operation, e.Definition, e.ProjectID)
}

func (e SecretAccessEvent) Severity() Severity {
	return SeverityInfo
}

func (e SecretAccessEvent) Facility() int {
	return FacilityAuth
}

func (e SecretAccessEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"tenant":     e.TenantID,
			"project":    e.ProjectID,
			"definition": e.Definition,
		},
		SDIDAction: {
			"operation": e.Operation,
			"actor":     e.ActorID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}
