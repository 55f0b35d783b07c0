package service

import (
	"fmt"

	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

// CalculateGroups computes how many equally sized groups a cohort needs and
// names them. A zero-student cohort still yields one (empty) group so the
// level always has a usable group list. studentsPerGroup <= 0 is a
// configuration bug and rejected outright.
func CalculateGroups(totalStudents, studentsPerGroup int) (int, []string, error) {
	if studentsPerGroup <= 0 {
		return 0, nil, appErrors.Clone(appErrors.ErrValidation, "students per group must be positive")
	}
	if totalStudents < 0 {
		return 0, nil, appErrors.Clone(appErrors.ErrValidation, "total students cannot be negative")
	}

	numGroups := (totalStudents + studentsPerGroup - 1) / studentsPerGroup
	if numGroups < 1 {
		numGroups = 1
	}

	names := make([]string, numGroups)
	for i := 0; i < numGroups; i++ {
		names[i] = GroupNameAt(i)
	}
	return numGroups, names, nil
}

// GroupNameAt returns the deterministic name for the i-th group: "A".."Z",
// then spreadsheet-style "AA", "AB", and so on.
func GroupNameAt(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}

// AssignGroups distributes students across the named groups as evenly as
// possible: the first remainder groups take one extra student. Input order
// is preserved, so repeated calls over the same student list produce an
// identical mapping. Irregular students must be filtered out by the caller
// before this runs.
func AssignGroups(studentIDs []string, numGroups int, groupNames []string) (map[string]string, error) {
	if numGroups < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group setting has no groups")
	}
	if len(groupNames) != numGroups {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("group setting is inconsistent: %d names for %d groups", len(groupNames), numGroups))
	}

	total := len(studentIDs)
	base := total / numGroups
	remainder := total % numGroups

	assignment := make(map[string]string, total)
	cursor := 0
	for g := 0; g < numGroups; g++ {
		size := base
		if g < remainder {
			size++
		}
		for i := 0; i < size; i++ {
			assignment[studentIDs[cursor]] = groupNames[g]
			cursor++
		}
	}
	return assignment, nil
}
