package template

import "github.com/kmadrilejo/atelier/internal/domain"

func hours(h float64) *float64  { return &h }
func points(p float64) *float64 { return &p }

// BuiltinTemplates returns the stock agency templates. The returned map is a
// fresh copy so a caller overwriting an entry never mutates another library.
func BuiltinTemplates() map[string]*ProjectTemplate {
	return map[string]*ProjectTemplate{
		"website": {
			CodePrefix: "WEB",
			Tasks: []TaskBlueprint{
				{Name: "Project Kickoff", DurationDays: 2, EstimatedHours: hours(6), Type: domain.TypeChore, StoryPoints: points(3), Priority: domain.PriorityMedium},
				{Name: "Discovery & Strategy", DurationDays: 5, DependsOn: []string{"Project Kickoff"}, EstimatedHours: hours(16), Type: domain.TypeResearch, StoryPoints: points(5), Priority: domain.PriorityHigh},
				{Name: "Content Architecture", DurationDays: 4, DependsOn: []string{"Discovery & Strategy"}, EstimatedHours: hours(12), Type: domain.TypeFeature, StoryPoints: points(5), Priority: domain.PriorityHigh},
				{Name: "Visual Design", DurationDays: 7, DependsOn: []string{"Content Architecture"}, EstimatedHours: hours(30), Type: domain.TypeFeature, StoryPoints: points(8), Priority: domain.PriorityHigh},
				{Name: "Development Sprint", DurationDays: 10, DependsOn: []string{"Visual Design"}, EstimatedHours: hours(45), Type: domain.TypeFeature, StoryPoints: points(13), Priority: domain.PriorityCritical},
				{Name: "Quality Assurance", DurationDays: 4, DependsOn: []string{"Development Sprint"}, EstimatedHours: hours(18), Type: domain.TypeQA, StoryPoints: points(5), Priority: domain.PriorityHigh},
				{Name: "Launch", DurationDays: 1, DependsOn: []string{"Quality Assurance"}, EstimatedHours: hours(4), Type: domain.TypeChore, StoryPoints: points(3), Priority: domain.PriorityHigh},
			},
			Milestones: []MilestoneBlueprint{
				{Title: "Design Approved", OffsetDays: 14},
				{Title: "Website Launched", OffsetDays: 33},
			},
		},
		"branding": {
			CodePrefix: "BRD",
			Tasks: []TaskBlueprint{
				{Name: "Brand Workshop", DurationDays: 3, EstimatedHours: hours(8), Type: domain.TypeResearch, StoryPoints: points(3), Priority: domain.PriorityMedium},
				{Name: "Audience Research", DurationDays: 6, DependsOn: []string{"Brand Workshop"}, EstimatedHours: hours(20), Type: domain.TypeResearch, StoryPoints: points(5), Priority: domain.PriorityHigh},
				{Name: "Moodboards", DurationDays: 4, DependsOn: []string{"Audience Research"}, EstimatedHours: hours(16), Type: domain.TypeFeature, StoryPoints: points(5), Priority: domain.PriorityMedium},
				{Name: "Logo Exploration", DurationDays: 5, DependsOn: []string{"Moodboards"}, EstimatedHours: hours(24), Type: domain.TypeFeature, StoryPoints: points(8), Priority: domain.PriorityHigh},
				{Name: "Brand Guidelines", DurationDays: 7, DependsOn: []string{"Logo Exploration"}, EstimatedHours: hours(28), Type: domain.TypeFeature, StoryPoints: points(8), Priority: domain.PriorityHigh},
				{Name: "Handover", DurationDays: 2, DependsOn: []string{"Brand Guidelines"}, EstimatedHours: hours(6), Type: domain.TypeChore, StoryPoints: points(3), Priority: domain.PriorityMedium},
			},
			Milestones: []MilestoneBlueprint{
				{Title: "Concept Approved", OffsetDays: 12},
				{Title: "Guidelines Delivered", OffsetDays: 27},
			},
		},
		"consulting": {
			CodePrefix: "CON",
			Tasks: []TaskBlueprint{
				{Name: "Initial Assessment", DurationDays: 3, EstimatedHours: hours(10), Type: domain.TypeResearch, StoryPoints: points(3), Priority: domain.PriorityMedium},
				{Name: "Stakeholder Interviews", DurationDays: 5, DependsOn: []string{"Initial Assessment"}, EstimatedHours: hours(18), Type: domain.TypeResearch, StoryPoints: points(5), Priority: domain.PriorityMedium},
				{Name: "Findings Synthesis", DurationDays: 4, DependsOn: []string{"Stakeholder Interviews"}, EstimatedHours: hours(14), Type: domain.TypeFeature, StoryPoints: points(5), Priority: domain.PriorityHigh},
				{Name: "Opportunity Mapping", DurationDays: 4, DependsOn: []string{"Findings Synthesis"}, EstimatedHours: hours(12), Type: domain.TypeFeature, StoryPoints: points(5), Priority: domain.PriorityHigh},
				{Name: "Roadmap Presentation", DurationDays: 2, DependsOn: []string{"Opportunity Mapping"}, EstimatedHours: hours(10), Type: domain.TypeChore, StoryPoints: points(3), Priority: domain.PriorityMedium},
			},
			Milestones: []MilestoneBlueprint{
				{Title: "Discovery Complete", OffsetDays: 10},
				{Title: "Final Presentation", OffsetDays: 18},
			},
		},
	}
}
