package requests

type FetchAccountRequest struct {
	UserID string `uri:"user_id" validate:"required"`
}
