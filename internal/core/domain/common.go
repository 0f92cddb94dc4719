package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// LastUpdatedAt is bumped by the store on every mutating write, including
// indirect ones (a transaction is touched when its splits change).
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
