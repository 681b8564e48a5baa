// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/passage/pkg/textnorm"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Ann", "Ann"},
		{"trims_space", "  Ann  ", "Ann"},
		{"composes_accents", "Jose\u0301", "Jos\u00e9"},
		{"keeps_newlines", "line one\nline two", "line one\nline two"},
		{"drops_controls", "An\u0000n\u200b", "Ann"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Clean(tt.input))
		})
	}
}

func TestLine(t *testing.T) {
	assert.Equal(t, "Ann Lee", textnorm.Line("  Ann \n\t Lee "))
	assert.Equal(t, "+234 801 000", textnorm.Line("+234  801\n000"))
}
