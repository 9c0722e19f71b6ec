package requests

type ListAccountsRequest struct {
	Currency string `query:"currency" validate:"omitempty,oneof=EURO POUND DOLLAR YEN FRANC CROWN"`
	Staff    *bool  `query:"staff"`
	Limit    uint64 `query:"limit" default:"50" validate:"lte=200"`
	Offset   uint64 `query:"offset"`
}
