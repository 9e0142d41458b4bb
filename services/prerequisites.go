package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"studyplanner/models"

	"gorm.io/gorm"
)

// ErrPrerequisiteCheckFailed wraps store failures during prerequisite
// validation. The enroll endpoint treats it as non-fatal and lets the
// enrollment proceed.
var ErrPrerequisiteCheckFailed = errors.New("failed to validate prerequisites")

// MissingPrerequisite describes one unfulfilled prerequisite edge.
type MissingPrerequisite struct {
	ModulePool  string `json:"module_pool"`
	ModuleName  string `json:"module_name"`
	IsRequired  bool   `json:"is_required"`
	Description string `json:"description,omitempty"`
}

// PrerequisiteValidationResult is the outcome of checking a user against a
// module's prerequisite edges.
type PrerequisiteValidationResult struct {
	CanEnroll            bool                  `json:"can_enroll"`
	MissingPrerequisites []MissingPrerequisite `json:"missing_prerequisites"`
	WarningPrerequisites []MissingPrerequisite `json:"warning_prerequisites"`
	Message              string                `json:"message"`
}

// ModuleSummary carries the descriptive fields of a prerequisite module.
type ModuleSummary struct {
	Pool    string `json:"pool"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Credits int    `json:"credits"`
}

// ChainPrerequisite is one direct prerequisite edge annotated with the
// referenced module's summary.
type ChainPrerequisite struct {
	PrerequisitePool string        `json:"prerequisite_pool"`
	IsRequired       bool          `json:"is_required"`
	Description      string        `json:"description,omitempty"`
	Module           ModuleSummary `json:"module"`
}

// PrerequisiteChain is the one-level prerequisite structure of a module.
type PrerequisiteChain struct {
	ModulePool    string              `json:"module_pool"`
	Prerequisites []ChainPrerequisite `json:"prerequisites"`
}

// EnrollmentSuggestion assigns a module a position in the suggested
// enrollment order. Order 1 is earliest.
type EnrollmentSuggestion struct {
	ModulePool string `json:"module_pool"`
	Order      int    `json:"order"`
	Reasoning  string `json:"reasoning"`
}

// prerequisiteRow is the join of an edge with its prerequisite module.
type prerequisiteRow struct {
	models.ModulePrerequisite
	PrereqName    string
	PrereqCode    string
	PrereqCredits int
}

// fetchPrerequisiteRows loads the direct prerequisite edges of modulePool
// joined with the prerequisite module's descriptive fields.
func fetchPrerequisiteRows(db *gorm.DB, modulePool string) ([]prerequisiteRow, error) {
	var rows []prerequisiteRow
	err := db.Model(&models.ModulePrerequisite{}).
		Select("module_prerequisites.*, modules.name AS prereq_name, modules.code AS prereq_code, modules.credits AS prereq_credits").
		Joins("JOIN modules ON modules.pool = module_prerequisites.prerequisite_pool").
		Where("module_prerequisites.module_pool = ?", modulePool).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCompletedModulePools returns the set of module pools the user has
// completed. Only COMPLETED enrollments count; IN_PROGRESS or PLANNED never
// satisfy a prerequisite.
func GetCompletedModulePools(db *gorm.DB, userID uint) (map[string]bool, error) {
	var pools []string
	err := db.Model(&models.UserModule{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Pluck("module_pool", &pools).Error
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(pools))
	for _, p := range pools {
		completed[p] = true
	}
	return completed, nil
}

// ValidatePrerequisites checks whether the user can enroll in the module.
// Enrollment is permitted when every required prerequisite edge is fulfilled
// by a COMPLETED enrollment; optional gaps only produce a warning.
func ValidatePrerequisites(db *gorm.DB, userID uint, modulePool string) (*PrerequisiteValidationResult, error) {
	rows, err := fetchPrerequisiteRows(db, modulePool)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrerequisiteCheckFailed, err)
	}

	// No prerequisites, user can enroll
	if len(rows) == 0 {
		return &PrerequisiteValidationResult{
			CanEnroll:            true,
			MissingPrerequisites: []MissingPrerequisite{},
			WarningPrerequisites: []MissingPrerequisite{},
			Message:              "No prerequisites required for this module.",
		}, nil
	}

	completed, err := GetCompletedModulePools(db, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrerequisiteCheckFailed, err)
	}

	missingRequired := []MissingPrerequisite{}
	missingOptional := []MissingPrerequisite{}

	for _, row := range rows {
		if completed[row.PrerequisitePool] {
			continue
		}
		missing := MissingPrerequisite{
			ModulePool:  row.PrerequisitePool,
			ModuleName:  row.PrereqName,
			IsRequired:  row.IsRequired,
			Description: row.Description,
		}
		if row.IsRequired {
			missingRequired = append(missingRequired, missing)
		} else {
			missingOptional = append(missingOptional, missing)
		}
	}

	canEnroll := len(missingRequired) == 0
	var message string
	if canEnroll {
		if len(missingOptional) > 0 {
			message = fmt.Sprintf("You can enroll, but consider completing %d optional prerequisite(s) first.", len(missingOptional))
		} else {
			message = "All prerequisites fulfilled. You can enroll in this module."
		}
	} else {
		message = fmt.Sprintf("Cannot enroll. You must complete %d required prerequisite(s) first.", len(missingRequired))
	}

	return &PrerequisiteValidationResult{
		CanEnroll:            canEnroll,
		MissingPrerequisites: missingRequired,
		WarningPrerequisites: missingOptional,
		Message:              message,
	}, nil
}

// GetPrerequisiteChain returns the direct prerequisite edges of modulePool,
// each annotated with the referenced module's summary. The visited set is
// threaded through recursive call sites by the caller; a pool already in the
// set returns an empty prerequisite list, which truncates cycles and
// self-references instead of recursing forever.
func GetPrerequisiteChain(db *gorm.DB, modulePool string, visited map[string]bool) (*PrerequisiteChain, error) {
	if visited == nil {
		visited = make(map[string]bool)
	}
	if visited[modulePool] {
		return &PrerequisiteChain{
			ModulePool:    modulePool,
			Prerequisites: []ChainPrerequisite{},
		}, nil
	}
	visited[modulePool] = true

	rows, err := fetchPrerequisiteRows(db, modulePool)
	if err != nil {
		return nil, err
	}

	chain := &PrerequisiteChain{
		ModulePool:    modulePool,
		Prerequisites: make([]ChainPrerequisite, 0, len(rows)),
	}
	for _, row := range rows {
		chain.Prerequisites = append(chain.Prerequisites, ChainPrerequisite{
			PrerequisitePool: row.PrerequisitePool,
			IsRequired:       row.IsRequired,
			Description:      row.Description,
			Module: ModuleSummary{
				Pool:    row.PrerequisitePool,
				Name:    row.PrereqName,
				Code:    row.PrereqCode,
				Credits: row.PrereqCredits,
			},
		})
	}
	return chain, nil
}

// ValidateMultiplePrerequisites validates a set of modules for one user.
// A lookup failure for one module degrades to a canEnroll=false entry
// instead of failing the whole batch.
func ValidateMultiplePrerequisites(db *gorm.DB, userID uint, modulePools []string) map[string]*PrerequisiteValidationResult {
	results := make(map[string]*PrerequisiteValidationResult, len(modulePools))
	for _, pool := range modulePools {
		result, err := ValidatePrerequisites(db, userID, pool)
		if err != nil {
			log.Printf("Error validating prerequisites for %s: %v", pool, err)
			results[pool] = &PrerequisiteValidationResult{
				CanEnroll:            false,
				MissingPrerequisites: []MissingPrerequisite{},
				WarningPrerequisites: []MissingPrerequisite{},
				Message:              "Error validating prerequisites",
			}
			continue
		}
		results[pool] = result
	}
	return results
}

// maxOrderDepth bounds the leveling loop so cyclic or deeply nested
// prerequisite structures cannot spin it forever.
const maxOrderDepth = 10

// GetSuggestedEnrollmentOrder computes a leveled enrollment order for the
// requested modules. Modules without prerequisites get order 1; each further
// level contains the modules whose direct prerequisites all have an order
// already. Anything still unassigned when no progress can be made (or the
// depth cap is hit) lands in the current level with a fallback reasoning.
// The planner itself never fails on unresolvable structures.
func GetSuggestedEnrollmentOrder(db *gorm.DB, modulePools []string) ([]EnrollmentSuggestion, error) {
	type moduleChain struct {
		ModulePool string
		Chain      *PrerequisiteChain
	}

	chains := make([]moduleChain, 0, len(modulePools))
	for _, pool := range modulePools {
		chain, err := GetPrerequisiteChain(db, pool, nil)
		if err != nil {
			return nil, err
		}
		chains = append(chains, moduleChain{ModulePool: pool, Chain: chain})
	}

	orderMap := make(map[string]int)
	result := []EnrollmentSuggestion{}

	// Modules with no prerequisites get order 1
	for _, mc := range chains {
		if len(mc.Chain.Prerequisites) == 0 {
			orderMap[mc.ModulePool] = 1
			result = append(result, EnrollmentSuggestion{
				ModulePool: mc.ModulePool,
				Order:      1,
				Reasoning:  "No prerequisites required",
			})
		}
	}

	remaining := []moduleChain{}
	for _, mc := range chains {
		if _, ok := orderMap[mc.ModulePool]; !ok {
			remaining = append(remaining, mc)
		}
	}

	currentOrder := 2
	for len(remaining) > 0 && currentOrder <= maxOrderDepth {
		canAssignNow := []moduleChain{}
		for _, mc := range remaining {
			assignable := true
			for _, prereq := range mc.Chain.Prerequisites {
				if _, ok := orderMap[prereq.PrerequisitePool]; !ok {
					assignable = false
					break
				}
			}
			if assignable {
				canAssignNow = append(canAssignNow, mc)
			}
		}

		if len(canAssignNow) == 0 {
			// Circular dependencies or prerequisites outside the requested set
			for _, mc := range remaining {
				orderMap[mc.ModulePool] = currentOrder
				result = append(result, EnrollmentSuggestion{
					ModulePool: mc.ModulePool,
					Order:      currentOrder,
					Reasoning:  "Complex dependency structure",
				})
			}
			remaining = nil
			break
		}

		for _, mc := range canAssignNow {
			orderMap[mc.ModulePool] = currentOrder
			requiredCount := 0
			for _, prereq := range mc.Chain.Prerequisites {
				if prereq.IsRequired {
					requiredCount++
				}
			}
			result = append(result, EnrollmentSuggestion{
				ModulePool: mc.ModulePool,
				Order:      currentOrder,
				Reasoning:  fmt.Sprintf("Depends on %d prerequisite(s)", requiredCount),
			})
		}

		next := remaining[:0]
		for _, mc := range remaining {
			if _, ok := orderMap[mc.ModulePool]; !ok {
				next = append(next, mc)
			}
		}
		remaining = next
		currentOrder++
	}

	// Depth cap exceeded: park whatever is left in the fallback bucket
	for _, mc := range remaining {
		result = append(result, EnrollmentSuggestion{
			ModulePool: mc.ModulePool,
			Order:      currentOrder,
			Reasoning:  "Complex dependency structure",
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})
	return result, nil
}
