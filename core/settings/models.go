package settings

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

// Grading period names
const (
	PeriodSemesters  = "Semesters"
	PeriodTrimesters = "Trimesters"
	PeriodQuarters   = "Quarters"
)

var PeriodNames = []string{PeriodSemesters, PeriodTrimesters, PeriodQuarters}

type Settings struct {
	UserID            string         `json:"-"`
	GradingPeriodName string         `json:"grading_period_name"`
	GPAScale          string         `json:"gpa_scale"`
	CustomScale       []grading.Step `json:"custom_scale,omitempty"`
	University        string         `json:"university,omitempty"`
	UpdatedAt         time.Time      `json:"updated_at"` // UTC; zero until first saved
}

// Default returns the settings of a user who never saved any.
func Default(userID string) Settings {
	return Settings{
		UserID:            userID,
		GradingPeriodName: PeriodSemesters,
		GPAScale:          grading.ScaleStandard40,
	}
}

// Scale returns the GPA scale selected by the user.
func (s Settings) Scale() grading.Scale {
	return grading.ScaleByName(s.GPAScale, s.CustomScale)
}

// UpdateSettings defines what information may be provided to modify Settings. Nil fields are kept.
type UpdateSettings struct {
	GradingPeriodName *string        `json:"grading_period_name" validate:"omitempty,periodname"`
	GPAScale          *string        `json:"gpa_scale" validate:"omitempty,gpascale"`
	CustomScale       []grading.Step `json:"custom_scale" validate:"omitempty,dive"`
	University        *string        `json:"university"`
}

func (us *UpdateSettings) Validate(validate *validator.Validate) error {
	if us.University != nil {
		univ := core.CleanString(*us.University)
		us.University = &univ
	}
	return validate.Struct(us)
}

// ScaleInfo describes an available GPA scale.
type ScaleInfo struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Steps       []grading.Step `json:"steps,omitempty"`
	Percentage  bool           `json:"percentage"`
}

// Scales lists the available scales; the CUSTOM entry carries the user's own steps, if any.
func Scales(custom []grading.Step) []ScaleInfo {
	infos := make([]ScaleInfo, 0, len(grading.ScaleNames))
	for _, name := range grading.ScaleNames {
		info := ScaleInfo{Name: name, DisplayName: grading.ScaleDisplayName(name)}
		switch name {
		case grading.ScaleWAM:
			info.Percentage = true
		case grading.ScaleCustom:
			if len(custom) > 0 {
				info.Steps = grading.NewScale(name, custom).Steps()
			}
		default:
			info.Steps = grading.ScaleByName(name, nil).Steps()
		}
		infos = append(infos, info)
	}
	return infos
}
