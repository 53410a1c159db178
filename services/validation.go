package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError points at the builder field that failed a rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failed rule, in the order the rules were
// checked. It matches ErrValidationFailed with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// TradeDraft is a trade as assembled in the builder: each team lists the
// picks it gives away.
type TradeDraft struct {
	Description string      `json:"description"`
	Teams       []TeamDraft `json:"teams"`
}

type TeamDraft struct {
	Name  string      `json:"name"`
	Picks []PickDraft `json:"picks"`
}

type PickDraft struct {
	Year          int    `json:"year"`
	Round         int    `json:"round"`
	PickNumber    int    `json:"pick_number"`
	ReceivingTeam string `json:"receiving_team"`
}

const (
	msgNoTeams         = "At least one team must be added"
	msgTeamNotSelected = "Team must be selected"
	msgDuplicateTeam   = "Team is already part of this trade"
	msgNoPicks         = "At least one draft pick must be added"
	msgNoReceiver      = "Receiving team must be selected"
	msgSameTeam        = "Receiving team cannot be the same as giving team"
	msgBadRound        = "Round must be 1 or 2"
	msgBadPickNumber   = "Pick number must be between 1 and 30"
	msgDuplicatePick   = "Draft pick is already part of this trade"
)

type pickKey struct {
	year, round, pickNumber int
	givingTeam              string
}

// TradeValidator checks a draft before it is valued or saved.
type TradeValidator struct {
	// RejectDuplicatePicks rejects a second pick with the same year, round,
	// pick number and giving team.
	RejectDuplicatePicks bool
}

// Validate returns nil or a *ValidationError listing every violation.
func (v TradeValidator) Validate(draft TradeDraft) error {
	verr := &ValidationError{}

	if len(draft.Teams) == 0 {
		verr.add("teams", msgNoTeams)
	}

	seen := make(map[pickKey]bool)
	listed := make(map[string]bool, len(draft.Teams))
	for i, team := range draft.Teams {
		giving := strings.TrimSpace(team.Name)
		if giving == "" {
			verr.add(fmt.Sprintf("team-%d", i), msgTeamNotSelected)
		} else if listed[giving] {
			verr.add(fmt.Sprintf("team-%d", i), msgDuplicateTeam)
		}
		listed[giving] = true
		if len(team.Picks) == 0 {
			verr.add(fmt.Sprintf("team-%d-picks", i), msgNoPicks)
		}

		for j, pick := range team.Picks {
			field := fmt.Sprintf("pick-%d-%d", i, j)
			receiving := strings.TrimSpace(pick.ReceivingTeam)

			if receiving == "" {
				verr.add(field, msgNoReceiver)
			} else if receiving == giving {
				verr.add(field, msgSameTeam)
			}
			if pick.Round != 1 && pick.Round != 2 {
				verr.add(field, msgBadRound)
			}
			if pick.PickNumber < 1 || pick.PickNumber > 30 {
				verr.add(field, msgBadPickNumber)
			}

			if v.RejectDuplicatePicks {
				key := pickKey{pick.Year, pick.Round, pick.PickNumber, giving}
				if seen[key] {
					verr.add(field, msgDuplicatePick)
				}
				seen[key] = true
			}
		}
	}

	return verr.orNil()
}

var validate = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct's `validate` tags and reports failures as
// a *ValidationError keyed by JSON field name.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.add(fe.Field(), fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("Failed the %q rule", fe.Tag())
	}
}
