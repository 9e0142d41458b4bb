package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"studyplanner/models"
)

// UserModuleData is the slice of a user's enrollment history the scoring
// functions care about.
type UserModuleData struct {
	ModulePool string
	Status     models.ModuleStatus
	Grade      *float64
}

// RecommendationOptions tune the module scoring.
type RecommendationOptions struct {
	TargetSemester string
	MaxCredits     int
	FocusArea      string
}

// ModuleRecommendation is one scored candidate module.
type ModuleRecommendation struct {
	Module              models.Module `json:"module"`
	Score               int           `json:"score"`
	Reasons             []string      `json:"reasons"`
	Difficulty          string        `json:"difficulty"` // easy, medium, hard
	Prerequisites       []string      `json:"prerequisites"`
	RecommendedSemester int           `json:"recommended_semester"`
}

// DistributionOptions tune the semester bin-packing.
type DistributionOptions struct {
	SemesterCount         int
	MaxCreditsPerSemester int
	PrioritizeEasyModules bool
}

// DistributedModule is one module placed into a semester bucket.
type DistributedModule struct {
	Module   models.Module `json:"module"`
	Credits  int           `json:"credits"`
	Priority int           `json:"priority"`
}

// StudyInsight is one advisory finding about a user's study situation.
type StudyInsight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Actionable  bool   `json:"actionable"`
}

// CalculateAverageGrade averages the grades of COMPLETED enrollments.
// Returns nil when no graded completion exists.
func CalculateAverageGrade(userModules []UserModuleData) *float64 {
	sum := 0.0
	count := 0
	for _, um := range userModules {
		if um.Status == models.StatusCompleted && um.Grade != nil {
			sum += *um.Grade
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

// extractCategory derives a category tag from a module pool identifier by
// cutting at the first digit.
func extractCategory(modulePool string) string {
	idx := strings.IndexFunc(modulePool, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if idx == 0 {
		return "UNKNOWN"
	}
	if idx > 0 {
		return modulePool[:idx]
	}
	if modulePool == "" {
		return "UNKNOWN"
	}
	return modulePool
}

// FilterCandidateModules narrows the catalog to recommendation candidates.
// COMPLETED (unless includeCompleted), IN_PROGRESS and PLANNED enrollments
// exclude their module; FAILED and CANCELLED leave it recommendable again.
// A non-empty focusArea keeps only modules of that category.
func FilterCandidateModules(catalog []models.Module, userModules []UserModuleData, includeCompleted bool, focusArea string) []models.Module {
	excluded := make(map[string]bool, len(userModules))
	for _, um := range userModules {
		switch um.Status {
		case models.StatusInProgress, models.StatusPlanned:
			excluded[um.ModulePool] = true
		case models.StatusCompleted:
			if !includeCompleted {
				excluded[um.ModulePool] = true
			}
		}
	}

	candidates := make([]models.Module, 0, len(catalog))
	for _, module := range catalog {
		if excluded[module.Pool] {
			continue
		}
		if focusArea != "" && module.Category != focusArea {
			continue
		}
		candidates = append(candidates, module)
	}
	return candidates
}

// CalculateModuleRecommendations scores every candidate module against the
// user's history. The score is an additive sum of independent weighted
// signals; each contributing signal appends a reason string. The result is
// sorted by descending score (stable for equal scores) and is deterministic
// for fixed inputs.
func CalculateModuleRecommendations(available []models.Module, userModules []UserModuleData, opts RecommendationOptions) []ModuleRecommendation {
	completedByCategory := make(map[string]int)
	for _, um := range userModules {
		if um.Status == models.StatusCompleted {
			completedByCategory[extractCategory(um.ModulePool)]++
		}
	}

	averageGrade := CalculateAverageGrade(userModules)

	recommendations := make([]ModuleRecommendation, 0, len(available))
	for _, module := range available {
		score := 0.0
		reasons := []string{}

		// Credit-based scoring (0-20 points)
		score += math.Min(float64(module.Credits)/10*20, 20)

		// Focus area bonus (25 points)
		if opts.FocusArea != "" && module.Category == opts.FocusArea {
			score += 25
			reasons = append(reasons, fmt.Sprintf("Focus area: %s", opts.FocusArea))
		}

		// Category experience (0-15 points)
		if categoryExp := completedByCategory[module.Category]; categoryExp > 0 {
			score += math.Min(float64(categoryExp)*5, 15)
			reasons = append(reasons, fmt.Sprintf("%d modules in %s", categoryExp, module.Category))
		}

		// Performance-based recommendations
		if averageGrade != nil {
			if *averageGrade <= 2.0 && module.Credits >= 6 {
				score += 10
				reasons = append(reasons, "Suitable for high achiever")
			} else if *averageGrade > 3.0 && module.Credits <= 6 {
				score += 15
				reasons = append(reasons, "Manageable workload")
			}
		}

		// Pool priority scoring
		if module.Pool == "Orientierungsphase" {
			score += 30
			reasons = append(reasons, "Foundation module")
		} else if module.Pool == "IT Vertiefung" {
			score += 20
			reasons = append(reasons, "Core specialization")
		}

		recommendations = append(recommendations, ModuleRecommendation{
			Module:              module,
			Score:               int(math.Round(score)),
			Reasons:             reasons,
			Difficulty:          assessDifficulty(module),
			Prerequisites:       inferPrerequisites(module),
			RecommendedSemester: calculateRecommendedSemester(module, len(userModules)),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	return recommendations
}

// ApplyCreditLimit greedily accepts recommendations while the running credit
// total stays within maxCredits (first-fit, not globally optimal). Returns
// the accepted set and its total credits.
func ApplyCreditLimit(recommendations []ModuleRecommendation, maxCredits int) ([]ModuleRecommendation, int) {
	accepted := []ModuleRecommendation{}
	totalCredits := 0
	for _, rec := range recommendations {
		if totalCredits+rec.Module.Credits <= maxCredits {
			totalCredits += rec.Module.Credits
			accepted = append(accepted, rec)
		}
	}
	return accepted, totalCredits
}

// assessDifficulty buckets a module by credit count.
func assessDifficulty(module models.Module) string {
	if module.Credits <= 3 {
		return "easy"
	}
	if module.Credits >= 9 {
		return "hard"
	}
	return "medium"
}

// inferPrerequisites produces human-readable prerequisite hints from the
// module's descriptive fields alone. Advisory only; the real gate is the
// prerequisite graph.
func inferPrerequisites(module models.Module) []string {
	prerequisites := []string{}

	if strings.Contains(module.Code, "2") || strings.Contains(module.Name, "2") {
		prerequisites = append(prerequisites, "Foundation modules recommended")
	}
	if module.Category == "INF" && module.Credits >= 6 {
		prerequisites = append(prerequisites, "Programming knowledge required")
	}
	if strings.Contains(strings.ToLower(module.Name), "advanced") || strings.Contains(module.Name, "Machine Learning") {
		prerequisites = append(prerequisites, "Advanced level required")
	}

	return prerequisites
}

// calculateRecommendedSemester suggests the earliest sensible semester based
// on pool and how far along the user is.
func calculateRecommendedSemester(module models.Module, userProgress int) int {
	if module.Pool == "Orientierungsphase" {
		return 1
	}
	if module.Pool == "IT Vertiefung" {
		return maxInt(2, ceilDiv(userProgress, 3))
	}
	return maxInt(3, ceilDiv(userProgress, 2))
}

// CalculateModulePriority ranks a module for distribution purposes.
func CalculateModulePriority(module models.Module) int {
	switch {
	case module.Pool == "Orientierungsphase":
		return 5
	case module.Pool == "IT Vertiefung":
		return 4
	case module.Category == "INF":
		return 3
	case module.Category == "MAN":
		return 2
	default:
		return 1
	}
}

// OptimizeStudyPlanDistribution bin-packs modules into semester buckets.
// Modules are sorted foundation-pool first then ascending credits (or pure
// ascending credits when PrioritizeEasyModules), then placed first-fit by
// semester index while the bucket stays within MaxCreditsPerSemester. A
// module that fits nowhere is force-appended to the last semester, which may
// exceed the cap.
func OptimizeStudyPlanDistribution(modulesList []models.Module, opts DistributionOptions) map[string][]DistributedModule {
	sorted := make([]models.Module, len(modulesList))
	copy(sorted, modulesList)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if opts.PrioritizeEasyModules {
			return a.Credits < b.Credits
		}
		// Foundation first, then by complexity
		if a.Pool == "Orientierungsphase" && b.Pool != "Orientierungsphase" {
			return true
		}
		if b.Pool == "Orientierungsphase" && a.Pool != "Orientierungsphase" {
			return false
		}
		return a.Credits < b.Credits
	})

	distribution := make(map[string][]DistributedModule, opts.SemesterCount)
	for i := 1; i <= opts.SemesterCount; i++ {
		distribution[fmt.Sprintf("Semester %d", i)] = []DistributedModule{}
	}

	for _, module := range sorted {
		placed := false
		for sem := 1; sem <= opts.SemesterCount && !placed; sem++ {
			semKey := fmt.Sprintf("Semester %d", sem)
			currentCredits := 0
			for _, item := range distribution[semKey] {
				currentCredits += item.Credits
			}
			if currentCredits+module.Credits <= opts.MaxCreditsPerSemester {
				distribution[semKey] = append(distribution[semKey], DistributedModule{
					Module:   module,
					Credits:  module.Credits,
					Priority: CalculateModulePriority(module),
				})
				placed = true
			}
		}

		// Fallback: place in last semester
		if !placed {
			lastKey := fmt.Sprintf("Semester %d", opts.SemesterCount)
			distribution[lastKey] = append(distribution[lastKey], DistributedModule{
				Module:   module,
				Credits:  module.Credits,
				Priority: CalculateModulePriority(module),
			})
		}
	}

	return distribution
}

// GenerateStudyInsights derives advisory findings from the user's enrollment
// history and study plans. Never gates anything.
func GenerateStudyInsights(userModules []UserModuleData, studyPlanCount int) []StudyInsight {
	insights := []StudyInsight{}

	completedCount := 0
	inProgressCount := 0
	for _, um := range userModules {
		switch um.Status {
		case models.StatusCompleted:
			completedCount++
		case models.StatusInProgress:
			inProgressCount++
		}
	}
	averageGrade := CalculateAverageGrade(userModules)

	// Performance insights
	if completedCount > 0 && averageGrade != nil {
		if *averageGrade <= 2.0 {
			insights = append(insights, StudyInsight{
				Type:        "performance",
				Title:       "Outstanding Performance",
				Description: fmt.Sprintf("Average grade: %.1f. Consider challenging modules.", *averageGrade),
				Priority:    "low",
				Actionable:  true,
			})
		} else if *averageGrade > 3.0 {
			insights = append(insights, StudyInsight{
				Type:        "performance",
				Title:       "Academic Support Recommended",
				Description: fmt.Sprintf("Average grade: %.1f. Consider reducing workload.", *averageGrade),
				Priority:    "high",
				Actionable:  true,
			})
		}
	}

	// Planning insights
	if studyPlanCount == 0 {
		insights = append(insights, StudyInsight{
			Type:        "planning",
			Title:       "Create Your Study Plan",
			Description: "Structure your studies with a personalized study plan.",
			Priority:    "medium",
			Actionable:  true,
		})
	}

	// Progress insights
	if inProgressCount > 4 {
		insights = append(insights, StudyInsight{
			Type:        "workload",
			Title:       "High Workload Alert",
			Description: fmt.Sprintf("%d modules in progress. Consider workload balance.", inProgressCount),
			Priority:    "high",
			Actionable:  true,
		})
	}

	return insights
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ceilDiv(a, b int) int {
	return int(math.Ceil(float64(a) / float64(b)))
}
