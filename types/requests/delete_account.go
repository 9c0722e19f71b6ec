package requests

type DeleteAccountRequest struct {
	UserID string `uri:"user_id" validate:"required"`
}
