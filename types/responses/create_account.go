package responses

import "github.com/tjarju/bank-users-go/models"

type CreateAccountResponseData struct {
	User  *AccountView        `json:"user"`
	Token *models.AccessToken `json:"token"`
}
