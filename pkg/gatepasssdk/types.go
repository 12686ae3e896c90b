package gatepasssdk

import "time"

// Redemption outcomes.
const (
	OutcomeGranted     = "granted"
	OutcomeAlreadyUsed = "already_used"
	OutcomeUnknown     = "unknown"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// IssueRequest is the body of POST /codes.
type IssueRequest struct {
	HolderName string `json:"holderName" example:"Alice"`
}

// IssueBatchRequest is the body of POST /codes/batch.
type IssueBatchRequest struct {
	HolderNames []string `json:"holderNames"`
}

// InvitationResponse describes one invitation record.
type InvitationResponse struct {
	Code       string     `json:"code" example:"ARD_01JAB3J2Z8M0X9T5K7Q4W6E1RS"`
	HolderName string     `json:"holderName" example:"Alice"`
	State      string     `json:"state" example:"issued"`
	IssuedAt   time.Time  `json:"issuedAt"`
	IssuedBy   string     `json:"issuedBy,omitempty"`
	UsedAt     *time.Time `json:"usedAt,omitempty"`
	UsedBy     string     `json:"usedBy,omitempty"`
	QRURL      string     `json:"qrUrl,omitempty"`
}

// IssueBatchResponse is returned by POST /codes/batch.
type IssueBatchResponse struct {
	Codes []InvitationResponse `json:"codes"`
}

// ListResponse is returned by GET /codes.
type ListResponse struct {
	Codes []InvitationResponse `json:"codes"`
}

// RedeemResponse is returned by POST /codes/{code}/redeem. HolderName and
// UsedAt are omitted for unknown codes.
type RedeemResponse struct {
	Outcome    string     `json:"outcome" example:"granted"`
	HolderName string     `json:"holderName,omitempty"`
	UsedAt     *time.Time `json:"usedAt,omitempty"`
	Message    string     `json:"message" example:"Welcome Alice!"`
}

// Admitted reports whether the holder may enter.
func (r *RedeemResponse) Admitted() bool {
	return r.Outcome == OutcomeGranted
}

// ScanEventResponse is one recorded validation attempt.
type ScanEventResponse struct {
	Code    string    `json:"code"`
	Outcome string    `json:"outcome"`
	Station string    `json:"station,omitempty"`
	At      time.Time `json:"at"`
}

// ScanHistoryResponse is returned by GET /codes/{code}/scans.
type ScanHistoryResponse struct {
	Scans []ScanEventResponse `json:"scans"`
}

// StatsResponse is returned by GET /stats.
type StatsResponse struct {
	IssuedCount int64 `json:"issuedCount"`
	UsedCount   int64 `json:"usedCount"`
	Remaining   int64 `json:"remaining"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists dependency checks performed by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
