package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shrimpsizemoose/examdesk/internal/dates"
)

const (
	MsgRequired      = "required field"
	MsgInvalidFormat = "invalid format"
	MsgInvalidNumber = "please enter a valid number"
	MsgDateInPast    = "date cannot be in the past"
	MsgDateInFuture  = "date cannot be in the future"
)

var (
	phoneRegex   = regexp.MustCompile(`^[0-9\-\+\(\)\s]+$`)
	mailboxRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type FieldResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type FormResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

type Validator struct {
	rules    Rules
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Validator)

func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

func New(rules Rules, opts ...Option) *Validator {
	validate := validator.New()
	mustRegister(validate, "phone", phoneRegex)
	mustRegister(validate, "mailbox", mailboxRegex)

	v := &Validator{
		rules:    rules,
		validate: validate,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func mustRegister(validate *validator.Validate, tag string, re *regexp.Regexp) {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// ValidateField runs required, length, pattern, numeric range and date checks
// in that order and reports the first one that fails. Fields without a rule
// are always valid.
func (v *Validator) ValidateField(name, raw string, kind FieldKind) FieldResult {
	rule, ok := v.rules[name]
	if !ok {
		return FieldResult{Valid: true}
	}

	if msg := v.check(rule, strings.TrimSpace(raw), kind); msg != "" {
		return FieldResult{Valid: false, Message: msg}
	}
	return FieldResult{Valid: true}
}

// ValidateForm validates every required field of the rule set against fields.
// Missing keys count as empty input.
func (v *Validator) ValidateForm(fields map[string]string) FormResult {
	result := FormResult{Valid: true, Errors: map[string]string{}}
	for name, rule := range v.rules {
		if !rule.Required {
			continue
		}
		res := v.ValidateField(name, fields[name], rule.Kind)
		if !res.Valid {
			result.Valid = false
			result.Errors[name] = res.Message
		}
	}
	return result
}

func (v *Validator) check(rule Rule, value string, kind FieldKind) string {
	if rule.Required && v.validate.Var(value, "required") != nil {
		return MsgRequired
	}
	if value == "" {
		return ""
	}

	if rule.MinLength > 0 && v.validate.Var(value, fmt.Sprintf("min=%d", rule.MinLength)) != nil {
		return fmt.Sprintf("minimum length required (%d characters)", rule.MinLength)
	}
	if rule.MaxLength > 0 && v.validate.Var(value, fmt.Sprintf("max=%d", rule.MaxLength)) != nil {
		return fmt.Sprintf("maximum length exceeded (%d characters)", rule.MaxLength)
	}

	if rule.Pattern != "" && v.validate.Var(value, rule.Pattern) != nil {
		return MsgInvalidFormat
	}

	switch kind {
	case KindNumber:
		return v.checkNumber(rule, value)
	case KindDate:
		return v.checkDate(rule, value)
	}
	return ""
}

func (v *Validator) checkNumber(rule Rule, value string) string {
	n, err := strconv.Atoi(value)
	if err != nil {
		return MsgInvalidNumber
	}
	if rule.Min != nil && v.validate.Var(n, fmt.Sprintf("min=%d", *rule.Min)) != nil {
		return fmt.Sprintf("minimum value required (%d)", *rule.Min)
	}
	if rule.Max != nil && v.validate.Var(n, fmt.Sprintf("max=%d", *rule.Max)) != nil {
		return fmt.Sprintf("maximum value exceeded (%d)", *rule.Max)
	}
	return ""
}

func (v *Validator) checkDate(rule Rule, value string) string {
	date, ok := dates.ParseDate(value)
	if !ok {
		return MsgInvalidFormat
	}

	now := v.now()
	if rule.NotPast && date.Before(dates.StartOfDay(now)) {
		return MsgDateInPast
	}
	if rule.NotFuture && date.After(dates.EndOfDay(now)) {
		return MsgDateInFuture
	}
	return ""
}
