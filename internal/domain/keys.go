package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	// KeyPartnerID is set only for PARTNER-role requests whose partner
	// profile is APPROVED.
	KeyPartnerID CtxKey = "PartnerID"
)
