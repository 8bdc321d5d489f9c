// Package plan turns a student profile into a study plan with a single
// structured generate call.
package plan

import "strings"

// Priority is the urgency the counsellor assigns to a module.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority normalises the three known priorities case-insensitively.
// Anything else is returned unchanged so an unexpected label from the
// backend still renders.
func ParsePriority(s string) Priority {
	s = strings.TrimSpace(s)
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return Priority(s)
}

// Known reports whether p is one of High, Medium or Low.
func (p Priority) Known() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Plan is the generated study plan. It lives in memory for one session.
type Plan struct {
	Title    string   `json:"title"`
	Overview string   `json:"overview"`
	Modules  []Module `json:"modules"`
	Tips     []string `json:"tips"`
}

// Module is one unit of a plan. ID is opaque and only unique within its
// plan.
type Module struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Subtopics     []string `json:"subtopics"`
	EstimatedTime string   `json:"estimatedTime"`
	Priority      Priority `json:"priority"`
}

// Module returns the module with the given id.
func (p *Plan) Module(id string) (Module, bool) {
	if p == nil {
		return Module{}, false
	}
	for _, m := range p.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}
