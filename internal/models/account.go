package models

// Account mirrors one row of the accounts table. ParentUID and
// DefaultTransferAccountUID use empty string for NULL; the repository maps
// them through sql.NullString.
type Account struct {
	AccountUID                string `db:"account_uid"`
	Name                      string `db:"name"`
	Description               string `db:"description"`
	AccountType               string `db:"account_type"`
	CommodityUID              string `db:"commodity_uid"`
	ParentUID                 string `db:"parent_uid"`
	FullName                  string `db:"full_name"`
	Placeholder               bool   `db:"placeholder"`
	Hidden                    bool   `db:"hidden"`
	Favorite                  bool   `db:"favorite"`
	Color                     string `db:"color"`
	DefaultTransferAccountUID string `db:"default_transfer_account_uid"`
	AuditFields
}
