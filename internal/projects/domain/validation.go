package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	minYear = 1000
	maxYear = 9999
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// civilDate is a YYYY-MM-DD value split into its numeric parts. It is not
// checked against the calendar; only the shape and the year range are.
type civilDate struct {
	year, month, day int
}

func (d civilDate) before(o civilDate) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

// parseDate checks the shape and year range of a date field.
func parseDate(field, value string) (civilDate, error) {
	if !dateRegex.MatchString(value) {
		return civilDate{}, NewValidationError(field, "bad date format")
	}
	// the regex guarantees three fixed-width digit groups
	year, _ := strconv.Atoi(value[0:4])
	month, _ := strconv.Atoi(value[5:7])
	day, _ := strconv.Atoi(value[8:10])
	if year < minYear || year > maxYear {
		return civilDate{}, NewValidationError(field, "year out of range")
	}
	return civilDate{year: year, month: month, day: day}, nil
}

// ValidateProjectInput checks a create request and returns the normalized
// fields. The first failing rule wins.
func ValidateProjectInput(in CreateInput) (ValidatedInput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ValidatedInput{}, NewValidationError("name", "name required")
	}
	clientName := strings.TrimSpace(in.ClientName)
	if clientName == "" {
		return ValidatedInput{}, NewValidationError("clientName", "clientName required")
	}
	if strings.TrimSpace(in.StartDate) == "" {
		return ValidatedInput{}, NewValidationError("startDate", "startDate required")
	}

	start, err := parseDate("startDate", in.StartDate)
	if err != nil {
		return ValidatedInput{}, err
	}

	var endDate *string
	var end civilDate
	if in.EndDate != "" {
		end, err = parseDate("endDate", in.EndDate)
		if err != nil {
			return ValidatedInput{}, err
		}
		v := in.EndDate
		endDate = &v
	}

	status := StatusActive
	if in.Status != "" {
		st, ok := ParseStatus(in.Status)
		if !ok {
			return ValidatedInput{}, NewValidationError("status", "unknown status")
		}
		status = st
	}

	if endDate != nil && end.before(start) {
		return ValidatedInput{}, NewValidationError("endDate", "end before start")
	}

	var description *string
	if in.Description != "" {
		v := in.Description
		description = &v
	}

	return ValidatedInput{
		Name:        name,
		ClientName:  clientName,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     endDate,
		Description: description,
	}, nil
}
