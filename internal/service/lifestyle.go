package service

import (
	"context"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/storage"
)

var hhmmRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmRe.MatchString(fl.Field().String())
	})
	// Report JSON field names so error messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LifestyleEntryRequest carries one day of self-reported fields. Pointer
// fields are optional; nil means not reported.
type LifestyleEntryRequest struct {
	Date               string   `json:"date" validate:"required,datetime=2006-01-02"`
	CaffeineServings   *int     `json:"caffeine_servings" validate:"omitempty,gte=0"`
	AlcoholServings    *int     `json:"alcohol_servings" validate:"omitempty,gte=0"`
	LastAlcoholicDrink *string  `json:"last_alcoholic_drink" validate:"omitempty,hhmm"`
	ScreentimeEnd      *string  `json:"screentime_end" validate:"omitempty,hhmm"`
	LastFood           *string  `json:"last_food" validate:"omitempty,hhmm"`
	SleepAids          []string `json:"sleep_aids" validate:"omitempty,dive,oneof=xanax melatonin unisom"`
	StressLevel        *int     `json:"stress_level" validate:"omitempty,gte=1,lte=10"`
}

// lifestyleFieldMessage maps a failing struct field to a message the client
// can show next to the input.
var lifestyleFieldMessage = map[string]string{
	"Date":               "date must be in YYYY-MM-DD format",
	"CaffeineServings":   "caffeine_servings must be zero or more",
	"AlcoholServings":    "alcohol_servings must be zero or more",
	"LastAlcoholicDrink": "last_alcoholic_drink must be in HH:MM format (e.g., 20:30)",
	"ScreentimeEnd":      "screentime_end must be in HH:MM format (e.g., 22:30)",
	"LastFood":           "last_food must be in HH:MM format (e.g., 19:45)",
	"SleepAids":          "sleep_aids may only contain: xanax, melatonin, unisom",
	"StressLevel":        "stress_level must be between 1 and 10",
}

// ValidateLifestyleRequest rejects malformed input before it reaches
// storage, with a field-specific message for the first failing field.
func ValidateLifestyleRequest(req *LifestyleEntryRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		field := verrs[0].StructField()
		if msg, ok := lifestyleFieldMessage[field]; ok {
			return internal.NewValidationError(verrs[0].Field(), msg)
		}
		return internal.NewValidationError(verrs[0].Field(), "invalid value")
	}
	return err
}

// SaveLifestyleEntry upserts the day's entry for the user. Repeated writes
// for the same (user, date) merge at field level.
func SaveLifestyleEntry(ctx context.Context, repo storage.LifestyleRepository, user *internal.User, req *LifestyleEntryRequest) (*internal.LifestyleEntry, error) {
	entry := &internal.LifestyleEntry{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		Date:               req.Date,
		CaffeineServings:   req.CaffeineServings,
		AlcoholServings:    req.AlcoholServings,
		LastAlcoholicDrink: req.LastAlcoholicDrink,
		ScreentimeEnd:      req.ScreentimeEnd,
		LastFood:           req.LastFood,
		SleepAids:          req.SleepAids,
		StressLevel:        req.StressLevel,
		CreatedAt:          time.Now(),
	}
	if err := repo.UpsertLifestyleEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
