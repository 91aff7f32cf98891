package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match the request payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ExhibitorInput carries the mutable fields of an exhibitor.
type ExhibitorInput struct {
	Name        string `json:"name" validate:"required,max=128"`
	Email       string `json:"email" validate:"required,max=255"`
	Institution string `json:"institution" validate:"required,max=255"`
}

func (in ExhibitorInput) normalized() ExhibitorInput {
	return ExhibitorInput{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Institution: strings.TrimSpace(in.Institution),
	}
}

// PrototypeInput carries the mutable fields of a prototype. An ExhibitorID
// of zero counts as missing. The max sizes mirror the columns in
// model.Prototype and are counted in characters.
type PrototypeInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=255"`
	Category    string `json:"category" validate:"required,max=50"`
	ExhibitorID int64  `json:"exhibitorId" validate:"required"`
}

func (in PrototypeInput) normalized() PrototypeInput {
	return PrototypeInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		ExhibitorID: in.ExhibitorID,
	}
}

// checkInput returns a *ValidationError naming every missing field and every
// field longer than its column allows.
func checkInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return internalErr("validate input", err)
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "max":
			verr.TooLong = append(verr.TooLong, fmt.Sprintf("%s (max %s)", fe.Field(), fe.Param()))
		default:
			verr.Missing = append(verr.Missing, fe.Field())
		}
	}
	return verr
}
