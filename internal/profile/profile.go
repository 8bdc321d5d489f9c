// Package profile models the student intake: the enums offered by the
// wizard, the topic set, and the immutable Profile handed to plan
// generation.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ExamType is the exam the student is preparing for.
type ExamType string

const (
	ExamJEE    ExamType = "JEE (Main + Advanced)"
	ExamNEET   ExamType = "NEET"
	ExamBoards ExamType = "Class 12 Boards"
)

// ExamTypes lists the exam types in display order.
var ExamTypes = []ExamType{ExamJEE, ExamNEET, ExamBoards}

var examKeys = map[string]ExamType{
	"jee":    ExamJEE,
	"neet":   ExamNEET,
	"boards": ExamBoards,
}

// ParseExamType accepts a display label ("JEE (Main + Advanced)") or a
// short key ("jee"), case-insensitively.
func ParseExamType(s string) (ExamType, error) {
	for _, e := range ExamTypes {
		if strings.EqualFold(s, string(e)) {
			return e, nil
		}
	}
	if e, ok := examKeys[strings.ToLower(strings.TrimSpace(s))]; ok {
		return e, nil
	}
	return "", fmt.Errorf("%w: exam type %q", ErrUnknownValue, s)
}

func (e ExamType) Valid() bool {
	return slices.Contains(ExamTypes, e)
}

// PrepLevel is the student's self-assessed preparation level.
type PrepLevel string

const (
	LevelBeginner     PrepLevel = "Beginner"
	LevelIntermediate PrepLevel = "Intermediate"
	LevelAdvanced     PrepLevel = "Advanced"
)

// PrepLevels lists the levels in display order.
var PrepLevels = []PrepLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Description is the Hinglish option label shown for the level.
func (l PrepLevel) Description() string {
	switch l {
	case LevelBeginner:
		return "Naya start kar raha hoon"
	case LevelIntermediate:
		return "Thoda confused hoon"
	case LevelAdvanced:
		return "Confidence chahiye"
	default:
		return string(l)
	}
}

// ParsePrepLevel accepts the level name or its Hinglish description.
func ParsePrepLevel(s string) (PrepLevel, error) {
	for _, l := range PrepLevels {
		if strings.EqualFold(s, string(l)) || strings.EqualFold(s, l.Description()) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: prep level %q", ErrUnknownValue, s)
}

func (l PrepLevel) Valid() bool {
	return slices.Contains(PrepLevels, l)
}

// ConsultationContext is the student's primary struggle.
type ConsultationContext string

const (
	ContextAnxiety       ConsultationContext = "Examination Anxiety"
	ContextPoorMarks     ConsultationContext = "Struggling with poor marks"
	ContextConcentration ConsultationContext = "Concentration Problem"
	ContextSubjectHelp   ConsultationContext = "Subject related problem"
	ContextOthers        ConsultationContext = "Others (Kuch aur baat karni hai)"
)

// ConsultationContexts lists the contexts in display order.
var ConsultationContexts = []ConsultationContext{
	ContextAnxiety, ContextPoorMarks, ContextConcentration, ContextSubjectHelp, ContextOthers,
}

var contextKeys = map[string]ConsultationContext{
	"anxiety":       ContextAnxiety,
	"poor-marks":    ContextPoorMarks,
	"concentration": ContextConcentration,
	"subject":       ContextSubjectHelp,
	"subject-help":  ContextSubjectHelp,
	"others":        ContextOthers,
}

// Emoji is the icon shown next to the context on the first intake step.
func (c ConsultationContext) Emoji() string {
	switch c {
	case ContextAnxiety:
		return "😰"
	case ContextPoorMarks:
		return "📉"
	case ContextConcentration:
		return "🤯"
	case ContextSubjectHelp:
		return "📘"
	default:
		return "💬"
	}
}

// Key is the short CLI name of the context.
func (c ConsultationContext) Key() string {
	switch c {
	case ContextAnxiety:
		return "anxiety"
	case ContextPoorMarks:
		return "poor-marks"
	case ContextConcentration:
		return "concentration"
	case ContextSubjectHelp:
		return "subject-help"
	case ContextOthers:
		return "others"
	}
	return ""
}

// ParseConsultationContext accepts a display label or a short key.
func ParseConsultationContext(s string) (ConsultationContext, error) {
	for _, c := range ConsultationContexts {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	if c, ok := contextKeys[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: consultation context %q", ErrUnknownValue, s)
}

func (c ConsultationContext) Valid() bool {
	return slices.Contains(ConsultationContexts, c)
}

// Weekly hours bounds.
const (
	MinHours     = 1
	MaxHours     = 100
	DefaultHours = 15
)

// ClampHours forces h into [MinHours, MaxHours].
func ClampHours(h int) int {
	return max(MinHours, min(MaxHours, h))
}

var (
	ErrNameRequired   = errors.New("name is required")
	ErrTopicsRequired = errors.New("at least one focus topic is required")
	ErrHoursRange     = fmt.Errorf("available hours must be between %d and %d", MinHours, MaxHours)
	ErrUnknownValue   = errors.New("unknown value")
)

// Profile is a submitted intake. Build one with Draft.Submit or New; the
// topic slice is owned by the Profile and never shared with the caller.
type Profile struct {
	Name                  string              `json:"name"`
	ExamType              ExamType            `json:"examType"`
	PrepLevel             PrepLevel           `json:"prepLevel"`
	FocusTopics           []string            `json:"focusTopics"`
	AvailableHoursPerWeek int                 `json:"availableHoursPerWeek"`
	ConsultationContext   ConsultationContext `json:"consultationContext"`
}

// New validates the fields and returns a Profile with a de-duplicated copy
// of topics.
func New(name string, exam ExamType, level PrepLevel, topics []string, hours int, context ConsultationContext) (Profile, error) {
	var ts Topics
	for _, t := range topics {
		ts.Add(t)
	}
	p := Profile{
		Name:                  strings.TrimSpace(name),
		ExamType:              exam,
		PrepLevel:             level,
		FocusTopics:           ts.List(),
		AvailableHoursPerWeek: hours,
		ConsultationContext:   context,
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate reports the first problem with p.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if len(p.FocusTopics) == 0 {
		return ErrTopicsRequired
	}
	if p.AvailableHoursPerWeek < MinHours || p.AvailableHoursPerWeek > MaxHours {
		return ErrHoursRange
	}
	if !p.ExamType.Valid() {
		return fmt.Errorf("%w: exam type %q", ErrUnknownValue, p.ExamType)
	}
	if !p.PrepLevel.Valid() {
		return fmt.Errorf("%w: prep level %q", ErrUnknownValue, p.PrepLevel)
	}
	if !p.ConsultationContext.Valid() {
		return fmt.Errorf("%w: consultation context %q", ErrUnknownValue, p.ConsultationContext)
	}
	return nil
}

// Topics returns a copy of the focus topics.
func (p Profile) Topics() []string {
	return append([]string(nil), p.FocusTopics...)
}

// UnmarshalJSON accepts labels or short keys for the enums and collapses
// duplicate topics. It does not validate; call Validate afterwards.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name                  string   `json:"name"`
		ExamType              string   `json:"examType"`
		PrepLevel             string   `json:"prepLevel"`
		FocusTopics           []string `json:"focusTopics"`
		AvailableHoursPerWeek int      `json:"availableHoursPerWeek"`
		ConsultationContext   string   `json:"consultationContext"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	exam, err := ParseExamType(raw.ExamType)
	if err != nil {
		return err
	}
	level, err := ParsePrepLevel(raw.PrepLevel)
	if err != nil {
		return err
	}
	context, err := ParseConsultationContext(raw.ConsultationContext)
	if err != nil {
		return err
	}

	var ts Topics
	for _, t := range raw.FocusTopics {
		ts.Add(t)
	}
	*p = Profile{
		Name:                  strings.TrimSpace(raw.Name),
		ExamType:              exam,
		PrepLevel:             level,
		FocusTopics:           ts.List(),
		AvailableHoursPerWeek: raw.AvailableHoursPerWeek,
		ConsultationContext:   context,
	}
	return nil
}
