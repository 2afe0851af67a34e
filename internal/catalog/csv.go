// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package catalog loads course and enrollment tables from CSV files.
//
// Both loaders are header-driven: columns are located by name, so column
// order in the file does not matter, and unknown columns are ignored.
// Row order is preserved because training output depends on it.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/recolab/courserec/internal/recommend"
)

// courseColumns are the required headers of a course CSV.
var courseColumns = []string{"course_id", "title", "description", "skill_tags", "difficulty", "category"}

// enrollmentColumns are the required headers of an enrollment CSV.
var enrollmentColumns = []string{"user_id", "course_id"}

// LoadCourses reads the course catalog from a CSV file.
func LoadCourses(path string) ([]recommend.Course, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open courses file: %w", err)
	}
	defer func() { _ = f.Close() }()

	courses, err := ReadCourses(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return courses, nil
}

// ReadCourses parses course rows from CSV data.
func ReadCourses(r io.Reader) ([]recommend.Course, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	cols, err := readHeader(reader, courseColumns)
	if err != nil {
		return nil, err
	}

	var courses []recommend.Course
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		courses = append(courses, recommend.Course{
			ID:          field(record, cols["course_id"]),
			Title:       field(record, cols["title"]),
			Description: field(record, cols["description"]),
			SkillTags:   field(record, cols["skill_tags"]),
			Difficulty:  field(record, cols["difficulty"]),
			Category:    field(record, cols["category"]),
		})
	}
	return courses, nil
}

// LoadEnrollments reads the enrollment table from a CSV file.
func LoadEnrollments(path string) ([]recommend.Enrollment, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open enrollments file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enrollments, err := ReadEnrollments(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return enrollments, nil
}

// ReadEnrollments parses enrollment rows from CSV data.
func ReadEnrollments(r io.Reader) ([]recommend.Enrollment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	cols, err := readHeader(reader, enrollmentColumns)
	if err != nil {
		return nil, err
	}

	var enrollments []recommend.Enrollment
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		enrollments = append(enrollments, recommend.Enrollment{
			UserID:   field(record, cols["user_id"]),
			CourseID: field(record, cols["course_id"]),
		})
	}
	return enrollments, nil
}

// readHeader consumes the header row and maps each required column to its
// position. Header matching is case-insensitive and whitespace-tolerant.
func readHeader(reader *csv.Reader, required []string) (map[string]int, error) {
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
