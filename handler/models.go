package handler

import (
	"encoding/json"
	"time"

	"apiprobe/storage"
)

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SaveStructureRequest keeps node and bond records as sent so clients may add
// fields the server does not know about.
type SaveStructureRequest struct {
	Name  string           `json:"name" binding:"required"`
	Nodes []map[string]any `json:"nodes"`
	Bonds []map[string]any `json:"bonds"`
}

type structureData struct {
	Nodes []map[string]any `json:"nodes"`
	Bonds []map[string]any `json:"bonds"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type StructureResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

func newUserResponse(u *storage.User) UserResponse {
	return UserResponse{ID: u.ID, FullName: u.FullName, Email: u.Email, CreatedAt: u.CreatedAt}
}

func newStructureResponse(s *storage.Structure) StructureResponse {
	return StructureResponse{ID: s.ID, Name: s.Name, Data: json.RawMessage(s.Data), CreatedAt: s.CreatedAt}
}
