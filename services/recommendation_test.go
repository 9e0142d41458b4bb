package services

import (
	"studyplanner/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradePtr(g float64) *float64 {
	return &g
}

func TestCalculateAverageGrade(t *testing.T) {
	assert.Nil(t, CalculateAverageGrade(nil))

	// Only COMPLETED enrollments with a grade count
	userModules := []UserModuleData{
		{ModulePool: "Mathematik 1", Status: models.StatusCompleted, Grade: gradePtr(1.7)},
		{ModulePool: "Mathematik 2", Status: models.StatusCompleted, Grade: gradePtr(2.3)},
		{ModulePool: "Zeitmanagement", Status: models.StatusInProgress, Grade: gradePtr(5.0)},
		{ModulePool: "Big Data", Status: models.StatusCompleted, Grade: nil},
	}

	avg := CalculateAverageGrade(userModules)
	require.NotNil(t, avg)
	assert.InDelta(t, 2.0, *avg, 0.0001)
}

func TestExtractCategory(t *testing.T) {
	assert.Equal(t, "INF", extractCategory("INF2201"))
	assert.Equal(t, "MAT", extractCategory("MAT1001"))
	assert.Equal(t, "Mathematik ", extractCategory("Mathematik 1"))
	assert.Equal(t, "UNKNOWN", extractCategory("1234"))
	assert.Equal(t, "UNKNOWN", extractCategory(""))
	assert.Equal(t, "Orientierungsphase", extractCategory("Orientierungsphase"))
}

func TestFilterCandidateModules(t *testing.T) {
	catalog := []models.Module{
		{Pool: "A", Category: "INF"},
		{Pool: "B", Category: "INF"},
		{Pool: "C", Category: "MAT"},
		{Pool: "D", Category: "INF"},
		{Pool: "E", Category: "MAN"},
		{Pool: "F", Category: "INF"},
	}
	userModules := []UserModuleData{
		{ModulePool: "A", Status: models.StatusCompleted},
		{ModulePool: "B", Status: models.StatusInProgress},
		{ModulePool: "C", Status: models.StatusPlanned},
		{ModulePool: "D", Status: models.StatusFailed},
		{ModulePool: "E", Status: models.StatusCancelled},
	}

	pools := func(modulesList []models.Module) []string {
		result := make([]string, 0, len(modulesList))
		for _, m := range modulesList {
			result = append(result, m.Pool)
		}
		return result
	}

	// FAILED and CANCELLED modules stay recommendable
	candidates := FilterCandidateModules(catalog, userModules, false, "")
	assert.ElementsMatch(t, []string{"D", "E", "F"}, pools(candidates))

	// includeCompleted brings COMPLETED modules back, but never
	// IN_PROGRESS or PLANNED ones
	candidates = FilterCandidateModules(catalog, userModules, true, "")
	assert.ElementsMatch(t, []string{"A", "D", "E", "F"}, pools(candidates))

	// focusArea is a hard filter on the category
	candidates = FilterCandidateModules(catalog, userModules, false, "INF")
	assert.ElementsMatch(t, []string{"D", "F"}, pools(candidates))
}

func TestCalculateModuleRecommendationsScoring(t *testing.T) {
	available := []models.Module{
		{Pool: "Orientierungsphase", Code: "GEN1001", Name: "Orientierungsphase", Credits: 15, Category: "GEN"},
		{Pool: "IT Vertiefung", Code: "INF2105", Name: "IT Vertiefung", Credits: 9, Category: "INF"},
		{Pool: "Zeitmanagement", Code: "GS1001", Name: "Zeitmanagement", Credits: 3, Category: "GS"},
	}

	recommendations := CalculateModuleRecommendations(available, nil, RecommendationOptions{})
	require.Len(t, recommendations, 3)

	byPool := make(map[string]ModuleRecommendation)
	for _, rec := range recommendations {
		byPool[rec.Module.Pool] = rec
	}

	// Credits capped at 20 plus the 30 point foundation bonus
	assert.Equal(t, 50, byPool["Orientierungsphase"].Score)
	assert.Contains(t, byPool["Orientierungsphase"].Reasons, "Foundation module")

	// 9 credits give 18 points plus the 20 point specialization bonus
	assert.Equal(t, 38, byPool["IT Vertiefung"].Score)
	assert.Contains(t, byPool["IT Vertiefung"].Reasons, "Core specialization")

	// 3 credits, no bonuses
	assert.Equal(t, 6, byPool["Zeitmanagement"].Score)
	assert.Empty(t, byPool["Zeitmanagement"].Reasons)

	// Sorted by descending score
	assert.Equal(t, "Orientierungsphase", recommendations[0].Module.Pool)
	assert.Equal(t, "IT Vertiefung", recommendations[1].Module.Pool)
}

func TestCalculateModuleRecommendationsFocusArea(t *testing.T) {
	available := []models.Module{
		{Pool: "Machine Learning", Code: "INF2201", Name: "Machine Learning", Credits: 6, Category: "INF"},
		{Pool: "Grundlagen des Marketing", Code: "MAN1001", Name: "Grundlagen des Marketing", Credits: 6, Category: "MAN"},
	}

	recommendations := CalculateModuleRecommendations(available, nil, RecommendationOptions{FocusArea: "INF"})

	byPool := make(map[string]ModuleRecommendation)
	for _, rec := range recommendations {
		byPool[rec.Module.Pool] = rec
	}

	assert.Equal(t, byPool["Grundlagen des Marketing"].Score+25, byPool["Machine Learning"].Score)
	assert.Contains(t, byPool["Machine Learning"].Reasons, "Focus area: INF")
}

func TestCalculateModuleRecommendationsPerformanceSignals(t *testing.T) {
	available := []models.Module{
		{Pool: "Machine Learning", Code: "INF2201", Name: "Machine Learning", Credits: 6, Category: "INF"},
	}

	highAchiever := []UserModuleData{
		{ModulePool: "MAT1001", Status: models.StatusCompleted, Grade: gradePtr(1.3)},
	}
	recs := CalculateModuleRecommendations(available, highAchiever, RecommendationOptions{})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Reasons, "Suitable for high achiever")

	struggling := []UserModuleData{
		{ModulePool: "MAT1001", Status: models.StatusCompleted, Grade: gradePtr(3.7)},
	}
	recs = CalculateModuleRecommendations(available, struggling, RecommendationOptions{})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Reasons, "Manageable workload")
}

func TestCalculateModuleRecommendationsCategoryExperience(t *testing.T) {
	available := []models.Module{
		{Pool: "Big Data", Code: "INF2202", Name: "Big Data", Credits: 6, Category: "INF"},
	}

	userModules := []UserModuleData{
		{ModulePool: "INF1011", Status: models.StatusCompleted},
		{ModulePool: "INF1012", Status: models.StatusCompleted},
	}

	recs := CalculateModuleRecommendations(available, userModules, RecommendationOptions{})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Reasons, "2 modules in INF")
	// 12 credit points plus 10 category points
	assert.Equal(t, 22, recs[0].Score)
}

func TestApplyCreditLimit(t *testing.T) {
	recommendations := []ModuleRecommendation{
		{Module: models.Module{Pool: "A", Credits: 9}},
		{Module: models.Module{Pool: "B", Credits: 6}},
		{Module: models.Module{Pool: "C", Credits: 3}},
	}

	limited, total := ApplyCreditLimit(recommendations, 12)
	require.Len(t, limited, 2)
	assert.Equal(t, "A", limited[0].Module.Pool)
	// B does not fit after A, but C does
	assert.Equal(t, "C", limited[1].Module.Pool)
	assert.Equal(t, 12, total)
}

func TestAssessDifficulty(t *testing.T) {
	assert.Equal(t, "easy", assessDifficulty(models.Module{Credits: 3}))
	assert.Equal(t, "medium", assessDifficulty(models.Module{Credits: 6}))
	assert.Equal(t, "hard", assessDifficulty(models.Module{Credits: 9}))
}

func TestCalculateModulePriority(t *testing.T) {
	assert.Equal(t, 5, CalculateModulePriority(models.Module{Pool: "Orientierungsphase"}))
	assert.Equal(t, 4, CalculateModulePriority(models.Module{Pool: "IT Vertiefung"}))
	assert.Equal(t, 3, CalculateModulePriority(models.Module{Pool: "Big Data", Category: "INF"}))
	assert.Equal(t, 2, CalculateModulePriority(models.Module{Pool: "Marketing", Category: "MAN"}))
	assert.Equal(t, 1, CalculateModulePriority(models.Module{Pool: "Zeitmanagement", Category: "GS"}))
}

func TestOptimizeStudyPlanDistribution(t *testing.T) {
	modulesList := []models.Module{
		{Pool: "Mathematik 1", Credits: 9, Category: "MAT"},
		{Pool: "Zeitmanagement", Credits: 3, Category: "GS"},
		{Pool: "Orientierungsphase", Credits: 15, Category: "GEN"},
		{Pool: "Machine Learning", Credits: 6, Category: "INF"},
	}

	distribution := OptimizeStudyPlanDistribution(modulesList, DistributionOptions{
		SemesterCount:         3,
		MaxCreditsPerSemester: 15,
	})

	require.Len(t, distribution, 3)

	// Foundation module is placed first and fills semester 1 completely
	first := distribution["Semester 1"]
	require.NotEmpty(t, first)
	assert.Equal(t, "Orientierungsphase", first[0].Module.Pool)

	// Every module is placed exactly once
	placed := 0
	for _, bucket := range distribution {
		placed += len(bucket)
	}
	assert.Equal(t, len(modulesList), placed)
}

func TestOptimizeStudyPlanDistributionOverflow(t *testing.T) {
	modulesList := []models.Module{
		{Pool: "A", Credits: 9},
		{Pool: "B", Credits: 9},
		{Pool: "C", Credits: 9},
	}

	distribution := OptimizeStudyPlanDistribution(modulesList, DistributionOptions{
		SemesterCount:         2,
		MaxCreditsPerSemester: 10,
	})

	// The module that fits nowhere is force-appended to the last semester
	last := distribution["Semester 2"]
	require.Len(t, last, 2)

	lastCredits := 0
	for _, item := range last {
		lastCredits += item.Credits
	}
	assert.Equal(t, 18, lastCredits)
}

func TestOptimizeStudyPlanDistributionEasyFirst(t *testing.T) {
	modulesList := []models.Module{
		{Pool: "Orientierungsphase", Credits: 15, Category: "GEN"},
		{Pool: "Zeitmanagement", Credits: 3, Category: "GS"},
	}

	distribution := OptimizeStudyPlanDistribution(modulesList, DistributionOptions{
		SemesterCount:         2,
		MaxCreditsPerSemester: 15,
		PrioritizeEasyModules: true,
	})

	// Pure ascending credits, the foundation bonus does not apply
	first := distribution["Semester 1"]
	require.NotEmpty(t, first)
	assert.Equal(t, "Zeitmanagement", first[0].Module.Pool)
}

func TestGenerateStudyInsights(t *testing.T) {
	// No history and no plans: only the planning insight
	insights := GenerateStudyInsights(nil, 0)
	require.Len(t, insights, 1)
	assert.Equal(t, "planning", insights[0].Type)

	// Strong grades trigger the performance insight
	strong := []UserModuleData{
		{ModulePool: "MAT1001", Status: models.StatusCompleted, Grade: gradePtr(1.3)},
	}
	insights = GenerateStudyInsights(strong, 1)
	require.Len(t, insights, 1)
	assert.Equal(t, "Outstanding Performance", insights[0].Title)

	// Weak grades trigger the support insight
	weak := []UserModuleData{
		{ModulePool: "MAT1001", Status: models.StatusCompleted, Grade: gradePtr(3.7)},
	}
	insights = GenerateStudyInsights(weak, 1)
	require.Len(t, insights, 1)
	assert.Equal(t, "Academic Support Recommended", insights[0].Title)

	// More than four modules in progress trigger the workload insight
	busy := []UserModuleData{
		{ModulePool: "A", Status: models.StatusInProgress},
		{ModulePool: "B", Status: models.StatusInProgress},
		{ModulePool: "C", Status: models.StatusInProgress},
		{ModulePool: "D", Status: models.StatusInProgress},
		{ModulePool: "E", Status: models.StatusInProgress},
	}
	insights = GenerateStudyInsights(busy, 1)
	require.Len(t, insights, 1)
	assert.Equal(t, "High Workload Alert", insights[0].Title)
}

func TestCalculateRecommendedSemester(t *testing.T) {
	assert.Equal(t, 1, calculateRecommendedSemester(models.Module{Pool: "Orientierungsphase"}, 0))
	assert.Equal(t, 2, calculateRecommendedSemester(models.Module{Pool: "IT Vertiefung"}, 3))
	assert.Equal(t, 4, calculateRecommendedSemester(models.Module{Pool: "IT Vertiefung"}, 12))
	assert.Equal(t, 3, calculateRecommendedSemester(models.Module{Pool: "Big Data"}, 0))
	assert.Equal(t, 5, calculateRecommendedSemester(models.Module{Pool: "Big Data"}, 10))
}
