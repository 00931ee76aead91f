package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roadmap is an AI-generated multi-step plan toward a single goal.
type Roadmap struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Goal           string             `bson:"goal" json:"goal"`
	Steps          []RoadmapStep      `bson:"steps" json:"steps"`
	FinalChecklist []string           `bson:"final_checklist,omitempty" json:"finalChecklist,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// RoadmapStep mirrors the JSON structure the AI is prompted to return.
type RoadmapStep struct {
	StepNumber  int           `bson:"step_number" json:"stepNumber"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Duration    string        `bson:"duration,omitempty" json:"duration,omitempty"`
	Tasks       StepTasks     `bson:"tasks,omitempty" json:"tasks,omitempty"`
	Tools       []string      `bson:"tools,omitempty" json:"tools,omitempty"`
	Resources   StepResources `bson:"resources,omitempty" json:"resources,omitempty"`
	Completed   bool          `bson:"completed" json:"completed"`
}

type StepTasks struct {
	Daily  []string `bson:"daily,omitempty" json:"daily,omitempty"`
	Weekly []string `bson:"weekly,omitempty" json:"weekly,omitempty"`
}

type StepResources struct {
	YouTube []string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Courses []string `bson:"courses,omitempty" json:"courses,omitempty"`
}

// CompletedSteps counts steps marked done.
func (r *Roadmap) CompletedSteps() int {
	n := 0
	for _, s := range r.Steps {
		if s.Completed {
			n++
		}
	}
	return n
}

// Progress returns the completion percentage rounded to the nearest whole
// percent. A roadmap with no steps reports 0.
func (r *Roadmap) Progress() int {
	total := len(r.Steps)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(r.CompletedSteps()) / float64(total) * 100))
}
