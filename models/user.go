package models

// User is the signed in visitor as returned by the registry API
type User struct {
	ID             string `json:"_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}
