package user

import (
	"time"

	dom "usermanagement/internal/domain/user"
)

// UserResponse is the wire view of a stored user.
type UserResponse struct {
	Id        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func toDTO(u *dom.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		Id:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDTOs(list []dom.User) []UserResponse {
	res := make([]UserResponse, 0, len(list))
	for _, u := range list {
		item := u // copy
		res = append(res, *toDTO(&item))
	}
	return res
}
