package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
	RoleUnknown Role = ""
)

// ParseRole maps a wire value onto the closed role set.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(s)
	}
	return RoleUnknown
}

// TeacherStatus is the closed set of teacher approval states.
type TeacherStatus string

const (
	TeacherPending  TeacherStatus = "PENDING"
	TeacherApproved TeacherStatus = "APPROVED"
	TeacherRejected TeacherStatus = "REJECTED"
	TeacherNone     TeacherStatus = ""
)

// ParseTeacherStatus maps a wire value onto the closed approval set.
func ParseTeacherStatus(s string) TeacherStatus {
	switch TeacherStatus(s) {
	case TeacherPending, TeacherApproved, TeacherRejected:
		return TeacherStatus(s)
	}
	return TeacherNone
}

// Session is the authenticated identity for one login. It is constructed at
// login, passed explicitly to every component that needs it, and simply
// dropped at logout. Nothing reads it ambiently.
type Session struct {
	UserID        uint
	Name          string
	Email         string
	Role          Role
	TeacherStatus TeacherStatus
	Token         string
}

type loginUser struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	TeacherStatus string `json:"teacher_status"`
}

type loginData struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Login authenticates against the token-issuing endpoint and builds a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/api/users/login/")
	if err != nil {
		return nil, &APIError{Kind: ErrTransport, Message: "login request failed", Err: err}
	}

	var env envelope
	if unmarshalErr := json.Unmarshal(resp.Body(), &env); unmarshalErr != nil && resp.StatusCode() < 300 {
		return nil, &APIError{Kind: ErrEmptyPayload, Status: resp.StatusCode(), Message: "unreadable login response", Err: unmarshalErr}
	}
	if apiErr := classify(resp.StatusCode(), env.Message); apiErr != nil {
		return nil, apiErr
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return nil, &APIError{Kind: ErrEmptyPayload, Status: http.StatusOK, Message: "login response missing token", Err: err}
	}

	return &Session{
		UserID:        data.User.ID,
		Name:          data.User.Name,
		Email:         data.User.Email,
		Role:          ParseRole(data.User.Role),
		TeacherStatus: ParseTeacherStatus(data.User.TeacherStatus),
		Token:         data.Token,
	}, nil
}
