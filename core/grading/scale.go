package grading

import "sort"

// Scale names
const (
	ScaleStandard40  = "STANDARD_4_0"
	ScaleStrict40    = "STRICT_4_0"
	Scale43          = "SCALE_4_3"
	ScaleWeighted50  = "WEIGHTED_5_0"
	ScaleAustralia70 = "AUS_7_0"
	ScaleWAM         = "WAM"
	ScaleCustom      = "CUSTOM"
)

// Step is one threshold of a Scale: percentages >= MinPercentage earn GPA.
type Step struct {
	MinPercentage float64 `json:"minPercentage" yaml:"minPercentage" validate:"min=0"`
	GPA           float64 `json:"gpa" yaml:"gpa" validate:"min=0"`
}

var (
	ScaleNames = []string{
		ScaleStandard40, ScaleStrict40, Scale43, ScaleWeighted50, ScaleAustralia70, ScaleWAM, ScaleCustom,
	}

	scaleDisplayNames = map[string]string{
		ScaleStandard40:  "Standard 4.0",
		ScaleStrict40:    "Strict 4.0",
		Scale43:          "4.3 Scale",
		ScaleWeighted50:  "Weighted 5.0",
		ScaleAustralia70: "Australian 7.0",
		ScaleWAM:         "WAM (Weighted Average Marks)",
		ScaleCustom:      "Custom Scale",
	}

	builtinScales = map[string][]Step{
		// A = 4.0, A- = 3.7
		ScaleStandard40: {
			{93, 4.0}, {90, 3.7}, {87, 3.3}, {83, 3.0}, {80, 2.7}, {77, 2.3},
			{73, 2.0}, {70, 1.7}, {67, 1.3}, {65, 1.0}, {0, 0.0},
		},
		// only A+ gets 4.0
		ScaleStrict40: {
			{97, 4.0}, {93, 3.7}, {90, 3.3}, {87, 3.0}, {83, 2.7}, {80, 2.3},
			{77, 2.0}, {73, 1.7}, {70, 1.3}, {67, 1.0}, {65, 0.7}, {0, 0.0},
		},
		// A+ = 4.3, A = 4.0
		Scale43: {
			{97, 4.3}, {93, 4.0}, {90, 3.7}, {87, 3.3}, {83, 3.0}, {80, 2.7},
			{77, 2.3}, {73, 2.0}, {70, 1.7}, {67, 1.3}, {65, 1.0}, {0, 0.0},
		},
		// honors/AP boost
		ScaleWeighted50: {
			{93, 5.0}, {90, 4.7}, {87, 4.3}, {83, 4.0}, {80, 3.7}, {77, 3.3},
			{73, 3.0}, {70, 2.7}, {67, 2.3}, {65, 2.0}, {0, 0.0},
		},
		// HD, D, C, P, F
		ScaleAustralia70: {
			{85, 7.0}, {75, 6.0}, {65, 5.0}, {50, 4.0}, {0, 0.0},
		},
	}
)

// Scale converts course percentages to grade points.
// The zero value is a step table with no steps (every percentage resolves to 0).
type Scale struct {
	name       string
	percentage bool
	steps      []Step // sorted by MinPercentage, descending
}

// PercentageScale reports percentages as-is (WAM).
func PercentageScale() Scale {
	return Scale{name: ScaleWAM, percentage: true}
}

// NewScale builds a step table; steps may be given in any order.
func NewScale(name string, steps []Step) Scale {
	sorted := append(make([]Step, 0, len(steps)), steps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinPercentage > sorted[j].MinPercentage })
	return Scale{name: name, steps: sorted}
}

// ScaleByName returns the named built-in scale, WAM, or the custom steps when name is CUSTOM.
// A CUSTOM scale without steps resolves every percentage to 0. Unknown names fall back to the standard 4.0 scale.
func ScaleByName(name string, custom []Step) Scale {
	switch name {
	case ScaleWAM:
		return PercentageScale()
	case ScaleCustom:
		return NewScale(ScaleCustom, custom)
	default:
		if steps, ok := builtinScales[name]; ok {
			return NewScale(name, steps)
		}
	}
	return NewScale(ScaleStandard40, builtinScales[ScaleStandard40])
}

func (s Scale) Name() string { return s.name }

// IsPercentage reports whether the scale is the percentage identity (no GPA conversion).
func (s Scale) IsPercentage() bool { return s.percentage }

func (s Scale) Steps() []Step {
	return append(make([]Step, 0, len(s.steps)), s.steps...)
}

// Resolve converts a 0-100 percentage to grade points.
func (s Scale) Resolve(percentage float64) float64 {
	if s.percentage {
		return percentage
	}
	for _, step := range s.steps {
		if percentage >= step.MinPercentage {
			return step.GPA
		}
	}
	return 0
}

func IsKnownScale(name string) bool {
	_, ok := scaleDisplayNames[name]
	return ok
}

func ScaleDisplayName(name string) string {
	if display, ok := scaleDisplayNames[name]; ok {
		return display
	}
	return name
}

// LetterGrade converts a percentage to a letter; letters are the same for every scale.
func LetterGrade(percentage float64) string {
	switch {
	case percentage >= 97:
		return "A+"
	case percentage >= 93:
		return "A"
	case percentage >= 90:
		return "A-"
	case percentage >= 87:
		return "B+"
	case percentage >= 83:
		return "B"
	case percentage >= 80:
		return "B-"
	case percentage >= 77:
		return "C+"
	case percentage >= 73:
		return "C"
	case percentage >= 70:
		return "C-"
	case percentage >= 67:
		return "D+"
	case percentage >= 65:
		return "D"
	case percentage >= 63:
		return "D-"
	default:
		return "F"
	}
}
