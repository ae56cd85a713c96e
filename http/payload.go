package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"people/db"
)

const (
	MaxNameLength     = 100
	MaxNicknameLength = 32
	MaxTechLength     = 32
)

var (
	errEmptyBody      = errors.New("request body is empty")
	errNullStackEntry = errors.New("stack entries must be strings, got null")
)

// CreatePersonRequest is the body of POST /people. Pointers tell a missing
// field apart from an empty one, and a null stack entry apart from "".
type CreatePersonRequest struct {
	Name      *string   `json:"name"`
	Nickname  *string   `json:"nickname"`
	Birthdate *db.Date  `json:"birthdate"`
	Stack     []*string `json:"stack"`
}

// Validate enforces the length limits, counted in characters rather than
// bytes.
func (r CreatePersonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NotNil.Error("name is required"),
			validation.RuneLength(0, MaxNameLength).Error(fmt.Sprintf("name must be at most %d characters", MaxNameLength)),
		),
		validation.Field(&r.Nickname,
			validation.NotNil.Error("nickname is required"),
			validation.RuneLength(0, MaxNicknameLength).Error(fmt.Sprintf("nickname must be at most %d characters", MaxNicknameLength)),
		),
		validation.Field(&r.Birthdate,
			validation.NotNil.Error("birthdate is required"),
		),
		validation.Field(&r.Stack,
			validation.Each(validation.RuneLength(0, MaxTechLength).Error(fmt.Sprintf("each stack entry must be at most %d characters", MaxTechLength))),
		),
	)
}

// Person builds the record to store. Call only after Validate succeeded.
func (r CreatePersonRequest) Person(id uuid.UUID) db.Person {
	var stack []string
	if r.Stack != nil {
		stack = make([]string, len(r.Stack))
		for i, tech := range r.Stack {
			stack[i] = *tech
		}
	}

	return db.Person{
		ID:        id,
		Name:      *r.Name,
		Nickname:  *r.Nickname,
		Birthdate: *r.Birthdate,
		Stack:     stack,
	}
}

// decodeCreatePerson requires the body to be exactly one JSON object;
// trailing bytes after it are an error.
func decodeCreatePerson(r io.Reader) (CreatePersonRequest, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return CreatePersonRequest{}, fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return CreatePersonRequest{}, errEmptyBody
	}

	var req CreatePersonRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return CreatePersonRequest{}, fmt.Errorf("invalid request payload: %w", err)
	}

	for _, tech := range req.Stack {
		if tech == nil {
			return CreatePersonRequest{}, fmt.Errorf("invalid request payload: %w", errNullStackEntry)
		}
	}

	return req, nil
}
