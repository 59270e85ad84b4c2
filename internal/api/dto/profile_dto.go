package dto

// UpdateProfileRequest payload for profile edits. Password fields are
// optional; when either is present both must match.
type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// ProfileResponse is the profile representation. The credential hash is
// never serialized.
type ProfileResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Role   string `json:"role"`
}
