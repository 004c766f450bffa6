package security

import (
	"fmt"
	"unicode/utf8"

	"github.com/clearedcrew/clearedcrew-backend/pkg/config"
	"github.com/clearedcrew/clearedcrew-backend/pkg/db/models"
	pkgerrors "github.com/clearedcrew/clearedcrew-backend/pkg/errors"
)

// Rejection reasons surfaced in validation error details.
const (
	ReasonPasswordTooShort = "password_too_short"
	ReasonPasswordTooLong  = "password_too_long"
	ReasonPasswordNoChange = "password_no_change"
	ReasonPasswordEmpty    = "password_empty"
)

const (
	DefaultMinLength = 12
	DefaultMaxLength = 128
)

// Validator is a single password rule. user is the identity whose credential
// is being changed; nil for fresh registrations. Validators are independent
// of each other, a candidate is accepted only when every validator accepts.
type Validator interface {
	Validate(password string, user *models.User) error
	HelpText() string
}

// NotSameAsOldValidator rejects a candidate equal to the user's current
// credential, compared through the one-way hash, never plaintext.
type NotSameAsOldValidator struct{}

func (NotSameAsOldValidator) Validate(password string, user *models.User) error {
	if user == nil || user.PasswordHash == "" {
		return nil
	}
	same, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// Unreadable stored hash cannot match the candidate.
		return nil
	}
	if same {
		return pkgerrors.New(pkgerrors.CodeValidation, "the new password cannot be the same as your current password").
			WithDetails(map[string]any{"reason": ReasonPasswordNoChange})
	}
	return nil
}

func (NotSameAsOldValidator) HelpText() string {
	return "Your new password must be different from your current password."
}

// MaximumLengthValidator bounds the candidate length in characters.
type MaximumLengthValidator struct {
	MaxLength int
}

func (v MaximumLengthValidator) Validate(password string, _ *models.User) error {
	if utf8.RuneCountInString(password) > v.MaxLength {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("this password is greater than the maximum of %d characters", v.MaxLength)).
			WithDetails(map[string]any{"reason": ReasonPasswordTooLong, "max_length": v.MaxLength})
	}
	return nil
}

func (v MaximumLengthValidator) HelpText() string {
	return fmt.Sprintf("Your password can be a maximum of %d characters.", v.MaxLength)
}

// MinimumLengthValidator requires the candidate length in characters.
type MinimumLengthValidator struct {
	MinLength int
}

func (v MinimumLengthValidator) Validate(password string, _ *models.User) error {
	if utf8.RuneCountInString(password) < v.MinLength {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("this password is too short, it must contain at least %d characters", v.MinLength)).
			WithDetails(map[string]any{"reason": ReasonPasswordTooShort, "min_length": v.MinLength})
	}
	return nil
}

func (v MinimumLengthValidator) HelpText() string {
	return fmt.Sprintf("Your password must contain at least %d characters.", v.MinLength)
}

// UnicodeValidator accepts any non-empty string. The rule is deliberately
// permissive: any Unicode character including emojis is allowed.
type UnicodeValidator struct{}

func (UnicodeValidator) Validate(password string, _ *models.User) error {
	if utf8.RuneCountInString(password) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must contain at least one character").
			WithDetails(map[string]any{"reason": ReasonPasswordEmpty})
	}
	return nil
}

func (UnicodeValidator) HelpText() string {
	return "Your password can contain any character, including Unicode and emojis."
}

// Policy evaluates a fixed list of validators. Evaluation is idempotent and
// order-independent: every validator runs and all failures are reported.
//
// A breach-database validator (checking candidates against a compromised
// password list) is a known extension point here; it is not part of the
// current rule set because it would add a network dependency to every
// registration.
type Policy struct {
	validators []Validator
}

// NewPolicy builds the standard validator set with bounds from configuration.
func NewPolicy(cfg config.PasswordConfig) *Policy {
	minLength := cfg.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	maxLength := cfg.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Policy{
		validators: []Validator{
			NotSameAsOldValidator{},
			MaximumLengthValidator{MaxLength: maxLength},
			MinimumLengthValidator{MinLength: minLength},
			UnicodeValidator{},
		},
	}
}

// Validate runs every validator against the candidate and aggregates all
// failures into a single validation error carrying the triggered reasons.
func (p *Policy) Validate(password string, user *models.User) error {
	var messages []string
	var reasons []string
	details := map[string]any{}

	for _, v := range p.validators {
		err := v.Validate(password, user)
		if err == nil {
			continue
		}
		typed := pkgerrors.As(err)
		if typed == nil {
			return err
		}
		messages = append(messages, typed.Message())
		if d, ok := typed.Details().(map[string]any); ok {
			if reason, ok := d["reason"].(string); ok {
				reasons = append(reasons, reason)
			}
			for k, value := range d {
				if k == "reason" {
					continue
				}
				details[k] = value
			}
		}
	}

	if len(messages) == 0 {
		return nil
	}

	details["password"] = messages
	details["reasons"] = reasons
	return pkgerrors.New(pkgerrors.CodeValidation, messages[0]).WithDetails(details)
}

// HelpTexts describes every active rule, in evaluation order.
func (p *Policy) HelpTexts() []string {
	texts := make([]string, 0, len(p.validators))
	for _, v := range p.validators {
		texts = append(texts, v.HelpText())
	}
	return texts
}
