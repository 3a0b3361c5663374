package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniversityEmail(t *testing.T) {
	cases := []struct {
		name  string
		email string
		want  bool
	}{
		{"us edu", "jane@stanford.edu", true},
		{"uk academic", "j.smith@ucl.ac.uk", true},
		{"australian", "sam@unimelb.edu.au", true},
		{"canadian", "lin@mcgill.ca", true},
		{"french", "amelie@sorbonne.fr", true},
		{"case insensitive", "Jane@Stanford.EDU", true},
		{"surrounding whitespace", "  jane@stanford.edu  ", true},
		{"gmail rejected", "jane@gmail.com", false},
		{"lookalike tld", "jane@example.education.com", false},
		{"no at sign", "stanford.edu", false},
		{"empty local part", "@stanford.edu", false},
		{"trailing at", "jane@", false},
		{"empty string", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniversityEmail(tc.email))
		})
	}
}
