package dto

type CreatePersonRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5,max=72"`
	Name     string `json:"name" validate:"required,min=3,max=100"`
}

// UpdatePersonRequest carries a partial update; nil fields are left untouched.
type UpdatePersonRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=5,max=72"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
}

// PictureUpload is an uploaded profile picture after the HTTP boundary has
// read it into memory.
type PictureUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}
