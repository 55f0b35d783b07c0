package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

// SchedulePolicy enumerates the institutional constraints a candidate
// section list is validated against.
type SchedulePolicy struct {
	// BlackoutWindows are slots no section may overlap, e.g. a midday break.
	BlackoutWindows []models.TimeWindow `json:"blackout_windows"`
	// AllowedDays restricts sections to the listed days when non-empty.
	AllowedDays []models.Day `json:"allowed_days,omitempty"`
	// AllowedTimeRange requires every section to be fully contained in the
	// range when set.
	AllowedTimeRange *models.TimeWindow `json:"allowed_time_range,omitempty"`
	// UniqueCoursePerGroup flags a course code appearing in more than one
	// section of the same candidate list.
	UniqueCoursePerGroup bool `json:"unique_course_per_group"`
}

// ValidateSections checks one group's candidate section list against the
// policy and returns the ordered violation list. The function is pure: it
// performs no I/O and never mutates its inputs. Malformed input (a section
// without a valid window) aborts validation entirely with a validation
// error instead of returning a partial list.
func ValidateSections(sections []models.Section, policy SchedulePolicy) ([]models.Violation, error) {
	for i, section := range sections {
		if strings.TrimSpace(section.CourseCode) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("section %d is missing a course code", i))
		}
		if err := section.Window.Validate(); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("section %s %s has an invalid time window", section.CourseCode, section.SectionLabel))
		}
	}
	for _, blackout := range policy.BlackoutWindows {
		if err := blackout.Validate(); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "blackout window is invalid")
		}
	}

	violations := make([]models.Violation, 0)
	violations = append(violations, roomConflicts(sections)...)
	violations = append(violations, blackoutOverlaps(sections, policy.BlackoutWindows)...)
	if policy.UniqueCoursePerGroup {
		violations = append(violations, duplicateCourses(sections)...)
	}
	violations = append(violations, rangeViolations(sections, policy)...)
	return violations, nil
}

// CountCapacityWarnings reports how many sections exceed their room
// capacity. Overflow is a soft warning under the current policy, not a
// violation, so it is surfaced as a separate count.
func CountCapacityWarnings(sections []models.Section) int {
	warnings := 0
	for _, section := range sections {
		if section.Capacity > 0 && section.StudentCount > section.Capacity {
			warnings++
		}
	}
	return warnings
}

type roomKey struct {
	Day  models.Day
	Room string
}

// roomConflicts reports every set of sections contesting a room at
// overlapping times. Sections sharing a (day, room) pair are clustered
// through pairwise window overlap, so one violation names all sharers,
// including chains where the outer sections only overlap through a
// middle one. Back-to-back sections never conflict.
func roomConflicts(sections []models.Section) []models.Violation {
	byRoom := make(map[roomKey][]int)
	keyOrder := make([]roomKey, 0)
	for i, section := range sections {
		key := roomKey{Day: section.Window.Day, Room: section.Room}
		if _, seen := byRoom[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byRoom[key] = append(byRoom[key], i)
	}

	var violations []models.Violation
	for _, key := range keyOrder {
		members := byRoom[key]
		if len(members) < 2 {
			continue
		}

		parent := make([]int, len(members))
		for i := range parent {
			parent[i] = i
		}
		var find func(int) int
		find = func(i int) int {
			if parent[i] != i {
				parent[i] = find(parent[i])
			}
			return parent[i]
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				if sections[members[i]].Window.Overlaps(sections[members[j]].Window) {
					parent[find(j)] = find(i)
				}
			}
		}

		clusters := make(map[int][]int)
		rootOrder := make([]int, 0)
		for i := range members {
			root := find(i)
			if _, seen := clusters[root]; !seen {
				rootOrder = append(rootOrder, root)
			}
			clusters[root] = append(clusters[root], members[i])
		}

		for _, root := range rootOrder {
			cluster := clusters[root]
			if len(cluster) < 2 {
				continue
			}
			refs := make([]models.SectionRef, len(cluster))
			labels := make([]string, len(cluster))
			for i, idx := range cluster {
				refs[i] = sections[idx].Ref()
				labels[i] = sections[idx].CourseCode
			}
			violations = append(violations, models.Violation{
				Kind: models.ViolationRoomConflict,
				Message: fmt.Sprintf("room %s is double-booked on %s by %s",
					key.Room, key.Day, strings.Join(labels, ", ")),
				Sections: refs,
			})
		}
	}
	return violations
}

func blackoutOverlaps(sections []models.Section, blackouts []models.TimeWindow) []models.Violation {
	var violations []models.Violation
	for _, section := range sections {
		for _, blackout := range blackouts {
			if section.Window.Overlaps(blackout) {
				violations = append(violations, models.Violation{
					Kind: models.ViolationBlackoutOverlap,
					Message: fmt.Sprintf("section %s %s overlaps blocked window %s",
						section.CourseCode, section.SectionLabel, blackout),
					Sections: []models.SectionRef{section.Ref()},
				})
				// one overlap is enough to flag the section
				break
			}
		}
	}
	return violations
}

func duplicateCourses(sections []models.Section) []models.Violation {
	byCourse := make(map[string][]models.SectionRef)
	courseOrder := make([]string, 0)
	for _, section := range sections {
		code := section.CourseCode
		if _, seen := byCourse[code]; !seen {
			courseOrder = append(courseOrder, code)
		}
		byCourse[code] = append(byCourse[code], section.Ref())
	}

	var violations []models.Violation
	for _, code := range courseOrder {
		refs := byCourse[code]
		if len(refs) < 2 {
			continue
		}
		labels := make([]string, len(refs))
		for i, ref := range refs {
			labels[i] = ref.SectionLabel
		}
		sort.Strings(labels)
		violations = append(violations, models.Violation{
			Kind: models.ViolationDuplicateCourse,
			Message: fmt.Sprintf("course %s appears in %d sections (%s)",
				code, len(refs), strings.Join(labels, ", ")),
			Sections: refs,
		})
	}
	return violations
}

func rangeViolations(sections []models.Section, policy SchedulePolicy) []models.Violation {
	if len(policy.AllowedDays) == 0 && policy.AllowedTimeRange == nil {
		return nil
	}

	allowedDays := make(map[models.Day]struct{}, len(policy.AllowedDays))
	for _, day := range policy.AllowedDays {
		allowedDays[day] = struct{}{}
	}

	var violations []models.Violation
	for _, section := range sections {
		if len(allowedDays) > 0 {
			if _, ok := allowedDays[section.Window.Day]; !ok {
				violations = append(violations, models.Violation{
					Kind: models.ViolationRangePolicy,
					Message: fmt.Sprintf("section %s %s is scheduled on %s which is outside the allowed days",
						section.CourseCode, section.SectionLabel, section.Window.Day),
					Sections: []models.SectionRef{section.Ref()},
				})
				continue
			}
		}
		if policy.AllowedTimeRange != nil && !policy.AllowedTimeRange.Contains(section.Window) {
			violations = append(violations, models.Violation{
				Kind: models.ViolationRangePolicy,
				Message: fmt.Sprintf("section %s %s (%s) is outside the allowed time range %s-%s",
					section.CourseCode, section.SectionLabel, section.Window,
					policy.AllowedTimeRange.Start, policy.AllowedTimeRange.End),
				Sections: []models.SectionRef{section.Ref()},
			})
		}
	}
	return violations
}
